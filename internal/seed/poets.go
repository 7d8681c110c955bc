package seed

import (
	"fmt"

	"bayaaz/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInPoet is a permanent catalog poet.
type BuiltInPoet struct {
	Username string
	PenName  string
	Slug     string
	Bio      string
}

// BuiltInPoets defines the poets that ship with every environment. They are
// classic voices the demo catalog is built around.
var BuiltInPoets = []BuiltInPoet{
	{Username: "ghalib", PenName: "Mirza Ghalib", Slug: "mirza-ghalib", Bio: "Preeminent Urdu and Persian poet of the late Mughal era."},
	{Username: "mir", PenName: "Mir Taqi Mir", Slug: "mir-taqi-mir", Bio: "Eighteenth-century master of the Urdu ghazal."},
	{Username: "faiz", PenName: "Faiz Ahmed Faiz", Slug: "faiz-ahmed-faiz", Bio: "Revolutionary romantic of twentieth-century Urdu verse."},
	{Username: "amrita", PenName: "Amrita Pritam", Slug: "amrita-pritam", Bio: "Punjabi and Hindi poet and novelist."},
	{Username: "gulzar", PenName: "Gulzar", Slug: "gulzar", Bio: "Contemporary poet and lyricist writing in Hindi and Urdu."},
	{Username: "parveen", PenName: "Parveen Shakir", Slug: "parveen-shakir", Bio: "Urdu poet known for her ghazals and free verse."},
	{Username: "nida", PenName: "Nida Fazli", Slug: "nida-fazli", Bio: "Hindi and Urdu poet of everyday longing."},
	{Username: "bashir", PenName: "Bashir Badr", Slug: "bashir-badr", Bio: "Modern Urdu ghazal poet."},
}

// Poets upserts the permanent built-in poets by slug.
func Poets(db *gorm.DB) error {
	for _, item := range BuiltInPoets {
		user := models.User{
			Username: item.Username,
			Email:    fmt.Sprintf("%s@bayaaz.example", item.Username),
			Password: "!", // built-in poets cannot log in
			IsPoet:   true,
			PenName:  item.PenName,
			Slug:     item.Slug,
			Bio:      item.Bio,
		}

		err := db.Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "slug"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{gorm.Expr("slug <> ''")}},
			DoUpdates:   clause.AssignmentColumns([]string{"pen_name", "bio", "updated_at"}),
		}).Create(&user).Error
		if err != nil {
			return fmt.Errorf("seed built-in poet %s: %w", item.Slug, err)
		}
	}
	return nil
}
