package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает значения, подставленные через -ldflags при сборке.
func Info() (v, c, d string) { return version, commit, date }

func String() string {
	return fmt.Sprintf("orders %s (commit=%s date=%s)", version, commit, date)
}
