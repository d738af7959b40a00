package seeders

import (
	"fmt"
	"time"

	"github.com/Rakhulsr/go-edumarket/app/models"
	"github.com/shopspring/decimal"
)

// CatalogAuthor owns the built-in catalog.
var CatalogAuthor = models.User{
	ID:         "edumarket-catalog-author",
	Name:       "Equipe EduMarket",
	Email:      "catalogo@edumarket.local",
	Role:       models.RoleSeller,
	IsVerified: true,
}

type entry struct {
	title, description, category, subject, price string
	grades, tags                                 []string
	rating                                       float64
	reviews, downloads                           int
}

var builtin = []entry{
	{"Frações divertidas", "Atividades ilustradas para introduzir frações com situações do cotidiano.", "Matemática", "Álgebra", "15.90", []string{"5º ano"}, []string{"frações", "jogos"}, 4.5, 12, 87},
	{"Geometria plana", "Exercícios de área e perímetro com malha quadriculada.", "Matemática", "Geometria", "22.50", []string{"8º ano"}, []string{"área", "perímetro"}, 4.0, 8, 54},
	{"Tabuada ilustrada", "Cartões de tabuada para memorização com apoio visual.", "Matemática", "Aritmética", "9.90", []string{"2º ano", "3º ano"}, []string{"tabuada", "multiplicação"}, 5.0, 30, 210},
	{"Interpretação de texto", "Textos curtos com questões de compreensão e inferência.", "Português", "Literatura", "18.00", []string{"6º ano"}, []string{"leitura", "compreensão"}, 4.5, 15, 98},
	{"Equações do 1º grau", "Sequência didática com problemas contextualizados.", "Matemática", "Álgebra", "12.00", []string{"7º ano"}, []string{"equações"}, 3.5, 6, 41},
	{"Ciclo da água", "Infográfico e experimento simples sobre evaporação e condensação.", "Ciências", "Biologia", "25.00", []string{"4º ano"}, []string{"meio ambiente", "experimento"}, 4.0, 9, 63},
	{"Números decimais", "Atividades com sistema monetário para praticar decimais.", "Matemática", "Aritmética", "20.00", []string{"6º ano"}, []string{"decimais", "dinheiro"}, 4.5, 11, 72},
	{"Brasil colônia", "Linha do tempo e mapas do período colonial.", "História", "História do Brasil", "12.90", []string{"7º ano"}, []string{"colônia", "mapas"}, 4.0, 5, 33},
	{"Sólidos geométricos", "Planificações para recortar e montar.", "Matemática", "Geometria", "19.99", []string{"9º ano"}, []string{"sólidos", "planificação"}, 5.0, 7, 49},
	{"Porcentagem no dia a dia", "Problemas de porcentagem com descontos e juros simples.", "Matemática", "Álgebra", "30.00", []string{"9º ano"}, []string{"porcentagem", "educação financeira"}, 3.5, 4, 28},
	{"Gramática essencial", "Revisão de classes gramaticais com exercícios graduados.", "Português", "Gramática", "14.50", []string{"8º ano"}, []string{"gramática"}, 4.0, 10, 66},
	{"Medidas de tempo", "Relógios para recortar e problemas com horas e minutos.", "Matemática", "Geometria", "7.50", []string{"3º ano"}, []string{"horas", "medidas"}, 4.5, 14, 120},
	{"Sistema solar", "Modelo em escala e fichas de cada planeta.", "Ciências", "Física", "16.00", []string{"5º ano"}, []string{"planetas", "astronomia"}, 5.0, 20, 150},
	{"Problemas de lógica", "Desafios de raciocínio lógico para resolver em grupo.", "Matemática", "Álgebra", "5.00", []string{"4º ano"}, []string{"lógica", "desafios"}, 4.0, 3, 25},
}

// Catalog returns the built-in catalog. It seeds fresh databases and is served when the
// database is unreachable and CATALOG_FALLBACK is set.
func Catalog() []models.Product {
	base := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	author := CatalogAuthor

	products := make([]models.Product, 0, len(builtin))
	for i, e := range builtin {
		products = append(products, models.Product{
			ID:            catalogID(i),
			AuthorID:      author.ID,
			Author:        &author,
			Title:         e.title,
			Description:   e.description,
			Price:         decimal.RequireFromString(e.price),
			Category:      e.category,
			Subject:       e.subject,
			GradeLevel:    e.grades,
			Tags:          e.tags,
			Status:        models.ProductStatusActive,
			DownloadCount: e.downloads,
			Rating:        e.rating,
			ReviewCount:   e.reviews,
			CreatedAt:     base.Add(time.Duration(i) * 24 * time.Hour),
			UpdatedAt:     base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	return products
}

func catalogID(i int) string {
	return fmt.Sprintf("edumarket-catalog-%02d", i+1)
}
