package app

// StorageDriver выбирает реализацию репозиториев.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска сервиса заказов.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver StorageDriver
	PostgresDSN   string

	KafkaBrokers []string

	// SeedDemo заполняет хранилище демонстрационными клиентами и
	// товарами при старте. Используется для локальной разработки.
	SeedDemo bool
}

// DefaultConfig возвращает базовые адреса и in-memory хранилище.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":8080",
		MetricsAddr:   ":9090",
		StorageDriver: StorageDriverMemory,
	}
}
