package domain

const (
	// AllCategories — служебное значение фильтра, возвращающее весь каталог.
	AllCategories = "Todos"
	// AllCategoriesAlias — англоязычный синоним AllCategories.
	AllCategoriesAlias = "All"
)

// IsAllCategories проверяет, является ли значение служебным «все категории».
func IsAllCategories(category string) bool {
	return category == AllCategories || category == AllCategoriesAlias
}
