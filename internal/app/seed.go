package app

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// seedDemo наполняет хранилище демонстрационными данными, чтобы сервис
// можно было прогнать сразу после запуска. Идентификаторы пишутся в лог.
func seedDemo(deps *Dependencies) error {
	now := time.Now().UTC()

	customers := []domain.Customer{
		{
			ID:        uuid.NewString(),
			Name:      "Иван Петров",
			Email:     "ivan.petrov@example.com",
			Phone:     "+7 900 000-00-01",
			Address:   "Москва, ул. Ленина, 1",
			CreatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			Name:      "Anna Smirnova",
			Email:     "anna.smirnova@example.com",
			CreatedAt: now,
		},
	}

	products := []domain.Product{
		{
			ID:            uuid.NewString(),
			Name:          "Механическая клавиатура",
			Description:   "TKL, коричневые свитчи",
			PriceMinor:    749900,
			StockQuantity: 25,
			CreatedAt:     now,
		},
		{
			ID:            uuid.NewString(),
			Name:          "Беспроводная мышь",
			PriceMinor:    249900,
			StockQuantity: 40,
			CreatedAt:     now,
		},
		{
			ID:            uuid.NewString(),
			Name:          "Монитор 27\"",
			Description:   "IPS, 144Hz",
			PriceMinor:    2999900,
			StockQuantity: 8,
			CreatedAt:     now,
		},
	}

	for _, c := range customers {
		if _, err := deps.Customers.Save(c); err != nil {
			return err
		}
		deps.Logger.WithFields(log.Fields{
			"customer_id": c.ID,
			"name":        c.Name,
		}).Info("demo customer seeded")
	}
	for _, p := range products {
		if _, err := deps.Products.Save(p); err != nil {
			return err
		}
		deps.Logger.WithFields(log.Fields{
			"product_id": p.ID,
			"name":       p.Name,
			"stock":      p.StockQuantity,
		}).Info("demo product seeded")
	}
	return nil
}
