package seed

import (
	"fmt"

	"novelshelf/internal/models"

	"gorm.io/gorm"
)

// StarterNovel is a permanent catalog entry present in every environment.
type StarterNovel struct {
	Name             string
	OriginalLanguage string
	Authors          []string
	Genres           []string
	Tags             []string
	Synopsis         string
	Year             int
	IsCompleted      bool
	ChapterCount     int
}

// StarterNovels defines the built-in catalog. New environments get these so
// the browse page is never empty.
var StarterNovels = []StarterNovel{
	{
		Name:             "The Obsidian Tower",
		OriginalLanguage: "korean",
		Authors:          []string{"Seo Jin-ho"},
		Genres:           []string{"fantasy", "action"},
		Tags:             []string{"tower", "system", "weak to strong"},
		Synopsis:         "Every month the Tower opens its gates, and every month fewer climbers return.",
		Year:             2018,
		ChapterCount:     612,
	},
	{
		Name:             "Ash Sovereign",
		OriginalLanguage: "chinese",
		Authors:          []string{"Mo Chen"},
		Genres:           []string{"xianxia", "adventure"},
		Tags:             []string{"reincarnation", "revenge", "overpowered protagonist"},
		Synopsis:         "Burned once by the sects that raised him, a fallen immortal begins again from the ashes.",
		Year:             2015,
		IsCompleted:      true,
		ChapterCount:     2104,
	},
	{
		Name:             "Letters from the Frontier",
		OriginalLanguage: "japanese",
		Authors:          []string{"Aoi Kusunoki"},
		Genres:           []string{"slice of life", "drama"},
		Tags:             []string{"female lead", "slow burn"},
		Synopsis:         "A cartographer posted to the empire's edge writes home about everything except the war.",
		Year:             2020,
		ChapterCount:     87,
	},
	{
		Name:             "Dungeon Ecologist",
		OriginalLanguage: "english",
		Authors:          []string{"R. M. Hale"},
		Genres:           []string{"litrpg", "comedy"},
		Tags:             []string{"dungeon", "crafting", "non-human protagonist"},
		Synopsis:         "The dungeon core just wants a balanced ecosystem. Adventurers keep ruining the food chain.",
		Year:             2021,
		ChapterCount:     342,
	},
	{
		Name:             "The Regressor's Ledger",
		OriginalLanguage: "korean",
		Authors:          []string{"Baek Seung-min"},
		Genres:           []string{"fantasy", "psychological"},
		Tags:             []string{"regression", "time loop", "anti-hero"},
		Synopsis:         "He has died forty-one times. This run, he is keeping receipts.",
		Year:             2019,
		ChapterCount:     498,
	},
}

// StarterCatalog seeds the permanent built-in novels. The catalog allows
// duplicate names in general, so re-runs match on name before inserting.
func StarterCatalog(db *gorm.DB) error {
	for _, item := range StarterNovels {
		var novel models.Novel
		err := db.Where("name = ?", item.Name).
			Attrs(models.Novel{
				Name:             item.Name,
				OriginalLanguage: item.OriginalLanguage,
				Authors:          item.Authors,
				Genres:           item.Genres,
				Tags:             item.Tags,
				Synopsis:         item.Synopsis,
				Year:             item.Year,
				IsCompleted:      item.IsCompleted,
				ChapterCount:     item.ChapterCount,
			}).
			FirstOrCreate(&novel).Error
		if err != nil {
			return fmt.Errorf("seed starter novel %q: %w", item.Name, err)
		}
	}

	return nil
}
