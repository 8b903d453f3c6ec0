package models

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleUser
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"not null"                 json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Category    string  `gorm:"not null"                 json:"category"`
	SubCategory string  `gorm:"not null"                 json:"subCategory"`
	SKU         string  `gorm:"not null"                 json:"sku"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Disabled    bool    `gorm:"default:false"            json:"disabled"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type SubCategory struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"               json:"id"`
	CategoryID uint   `gorm:"index;not null;uniqueIndex:idx_cat_sub" json:"category_id"`
	Name       string `gorm:"not null;uniqueIndex:idx_cat_sub"       json:"name"`
}

// Permissions is embedded so the JSON keeps the nested {admin, manager, user}
// shape the management UI expects.
type Permissions struct {
	Admin   bool `gorm:"column:perm_admin"   json:"admin"`
	Manager bool `gorm:"column:perm_manager" json:"manager"`
	User    bool `gorm:"column:perm_user"    json:"user"`
}

type Feature struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string      `gorm:"unique;not null"          json:"name"`
	Description string      `json:"description"`
	Permissions Permissions `gorm:"embedded"                 json:"permissions"`
}

type Favorite struct {
	ID        uint `gorm:"primaryKey"                               json:"id"`
	UserID    uint `gorm:"index;not null;uniqueIndex:idx_user_prod" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_user_prod"       json:"product_id"`
}
