package fakers

import (
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	fakeCategories = map[string][]string{
		"Matemática": {"Álgebra", "Geometria", "Aritmética"},
		"Português":  {"Gramática", "Literatura", "Redação"},
		"Ciências":   {"Biologia", "Física", "Química"},
		"História":   {"História do Brasil", "História Geral"},
	}
	fakeGrades = []string{"1º ano", "2º ano", "3º ano", "4º ano", "5º ano", "6º ano", "7º ano", "8º ano", "9º ano"}
)

// ProductFaker builds an active product for author with a random category, subject and
// grade range. Prices fall between 5.00 and 49.90.
func ProductFaker(author *models.User) *models.Product {
	categories := make([]string, 0, len(fakeCategories))
	for c := range fakeCategories {
		categories = append(categories, c)
	}
	category := categories[rand.Intn(len(categories))]
	subjects := fakeCategories[category]

	first := rand.Intn(len(fakeGrades) - 1)
	grades := fakeGrades[first : first+1+rand.Intn(2)]

	return &models.Product{
		ID:          uuid.New().String(),
		AuthorID:    author.ID,
		Title:       strings.TrimSuffix(faker.Sentence(), "."),
		Description: faker.Paragraph(),
		Price:       decimal.NewFromInt(int64(500 + rand.Intn(4491))).Shift(-2),
		Category:    category,
		Subject:     subjects[rand.Intn(len(subjects))],
		GradeLevel:  append([]string(nil), grades...),
		Tags:        []string{faker.Word(), faker.Word()},
		Status:      models.ProductStatusActive,
	}
}
