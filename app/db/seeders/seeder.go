package seeders

import (
	"fmt"
	"log"

	"github.com/Rakhulsr/go-edumarket/app/db/fakers"
	"github.com/Rakhulsr/go-edumarket/app/models"
	"gorm.io/gorm"
)

type Options struct {
	Sellers           int
	ProductsPerAuthor int
}

// DBSeed stores the built-in catalog, then fake sellers with fake products. The built-in
// part is idempotent; every run adds a new batch of fake sellers.
func DBSeed(db *gorm.DB, opts Options) error {
	return db.Transaction(func(tx *gorm.DB) error {
		author := CatalogAuthor
		if err := tx.Where(models.User{ID: author.ID}).FirstOrCreate(&author).Error; err != nil {
			return fmt.Errorf("failed to seed catalog author: %w", err)
		}

		// derived counters start at zero; only the fallback list carries showcase numbers
		for _, p := range Catalog() {
			p.Author = nil
			p.Rating, p.ReviewCount, p.DownloadCount = 0, 0, 0
			if err := tx.Where(models.Product{ID: p.ID}).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("failed to seed product %q: %w", p.Title, err)
			}
		}
		log.Printf("✅ Seeded %d catalog products", len(builtin))

		for i := 0; i < opts.Sellers; i++ {
			seller := fakers.UserFaker(models.RoleSeller)
			if err := tx.Create(seller).Error; err != nil {
				return fmt.Errorf("failed to seed seller: %w", err)
			}
			for j := 0; j < opts.ProductsPerAuthor; j++ {
				if err := tx.Create(fakers.ProductFaker(seller)).Error; err != nil {
					return fmt.Errorf("failed to seed product for %s: %w", seller.Email, err)
				}
			}
		}
		log.Printf("✅ Seeded %d fake sellers", opts.Sellers)

		return refreshAuthors(tx)
	})
}

// refreshAuthors recomputes total_products for every author after bulk inserts.
func refreshAuthors(tx *gorm.DB) error {
	return tx.Exec(`UPDATE users SET total_products = (
		SELECT COUNT(*) FROM products WHERE products.author_id = users.id AND products.status <> ?
	)`, models.ProductStatusInactive).Error
}
