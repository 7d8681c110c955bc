// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"bayaaz/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumReaders   int
	PoemsPerPoet int
	ShouldClean  bool
	// SkipBcrypt stores plaintext passwords; dev fast mode only.
	SkipBcrypt bool
	// MaxDays is how far back created_at timestamps are spread.
	MaxDays   int
	BatchSize int
}

// Distribution describes how a poet's catalog splits across categories,
// in percent. Values should sum to 100.
type Distribution struct {
	Ghazal int
	Sher   int
	Nazm   int
	Rubai  int
}

var defaultDistribution = Distribution{Ghazal: 40, Sher: 30, Nazm: 20, Rubai: 10}

// CategoryDistributions are named catalog shapes keyed by poet slug. Poets
// without an entry use defaultDistribution.
var CategoryDistributions = map[string]Distribution{
	"mirza-ghalib":  {Ghazal: 70, Sher: 20, Nazm: 0, Rubai: 10},
	"gulzar":        {Ghazal: 20, Sher: 30, Nazm: 50, Rubai: 0},
	"amrita-pritam": {Ghazal: 0, Sher: 10, Nazm: 80, Rubai: 10},
}

// computeCounts splits total across the four categories per the distribution.
// Ghazal absorbs the rounding remainder so counts always sum to total.
func computeCounts(total int, d Distribution) (ghazal, sher, nazm, rubai int) {
	sher = total * d.Sher / 100
	nazm = total * d.Nazm / 100
	rubai = total * d.Rubai / 100
	ghazal = total - sher - nazm - rubai
	return ghazal, sher, nazm, rubai
}

// Seeder orchestrates demo-data creation.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{
		db:      db,
		opts:    opts,
		factory: NewFactory(db, opts),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run populates the database: built-in poets, reader accounts, each poet's
// catalog, and a bookmark/follow mesh between readers and poets.
func (s *Seeder) Run() error {
	log.Printf("🌱 Starting database seeding with %d readers and %d poems per poet...", s.opts.NumReaders, s.opts.PoemsPerPoet)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := Poets(s.db); err != nil {
		return fmt.Errorf("seed built-in poets: %w", err)
	}

	var poets []models.User
	if err := s.db.Where("is_poet = ?", true).Find(&poets).Error; err != nil {
		return fmt.Errorf("load poets: %w", err)
	}
	log.Printf("✓ %d poets available", len(poets))

	readers, err := s.SeedReaders(s.opts.NumReaders)
	if err != nil {
		return fmt.Errorf("seed readers: %w", err)
	}
	log.Printf("✓ %d readers created", len(readers))

	poems, err := s.SeedPoems(poets)
	if err != nil {
		return fmt.Errorf("seed poems: %w", err)
	}
	log.Printf("✓ %d poems created", len(poems))

	if err := s.SeedEngagement(readers, poets, poems); err != nil {
		return fmt.Errorf("seed engagement: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// ClearAll removes all seeded rows. Postgres only.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE follows, bookmarks, poems, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedReaders creates n reader accounts.
func (s *Seeder) SeedReaders(n int) ([]models.User, error) {
	readers := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		reader, err := s.factory.CreateReader()
		if err != nil {
			log.Printf("Failed to create reader %d: %v", i, err)
			continue
		}
		readers = append(readers, *reader)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d readers...", i)
		}
	}
	return readers, nil
}

// SeedPoems builds each poet's catalog per their category distribution and
// persists it in batches.
func (s *Seeder) SeedPoems(poets []models.User) ([]*models.Poem, error) {
	perPoet := s.opts.PoemsPerPoet
	if perPoet <= 0 {
		perPoet = 20
	}

	var all []*models.Poem
	for i := range poets {
		poet := &poets[i]
		d, ok := CategoryDistributions[poet.Slug]
		if !ok {
			d = defaultDistribution
		}
		ghazal, sher, nazm, rubai := computeCounts(perPoet, d)

		batch := make([]*models.Poem, 0, perPoet)
		for category, count := range map[string]int{
			models.CategoryGhazal: ghazal,
			models.CategorySher:   sher,
			models.CategoryNazm:   nazm,
			models.CategoryRubai:  rubai,
		} {
			for j := 0; j < count; j++ {
				batch = append(batch, s.factory.BuildPoem(poet, category))
			}
		}
		if err := s.factory.CreatePoemsBatch(batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}

// SeedEngagement wires readers to poets and poems: each reader follows a few
// poets and bookmarks a few published poems. Bookmark counters are kept in
// step so feed personalization has real signal to work with.
func (s *Seeder) SeedEngagement(readers []models.User, poets []models.User, poems []*models.Poem) error {
	published := make([]*models.Poem, 0, len(poems))
	for _, p := range poems {
		if p.IsPublished() {
			published = append(published, p)
		}
	}
	if len(poets) == 0 || len(published) == 0 {
		return nil
	}

	bookmarkTotals := make(map[uint]int)

	for _, reader := range readers {
		followed := make(map[uint]bool)
		for i := 0; i < 1+s.rng.Intn(3); i++ {
			poet := poets[s.rng.Intn(len(poets))]
			if poet.ID == reader.ID || followed[poet.ID] {
				continue
			}
			followed[poet.ID] = true
			follow := models.Follow{FollowerID: reader.ID, PoetID: poet.ID}
			if err := s.db.Create(&follow).Error; err != nil {
				return err
			}
		}

		bookmarked := make(map[uint]bool)
		for i := 0; i < 2+s.rng.Intn(5); i++ {
			poem := published[s.rng.Intn(len(published))]
			if bookmarked[poem.ID] {
				continue
			}
			bookmarked[poem.ID] = true
			bookmark := models.Bookmark{UserID: reader.ID, PoemID: poem.ID}
			if err := s.db.Create(&bookmark).Error; err != nil {
				return err
			}
			bookmarkTotals[poem.ID]++
		}
	}

	for poemID, count := range bookmarkTotals {
		err := s.db.Model(&models.Poem{}).Where("id = ?", poemID).
			Update("bookmark_count", count).Error
		if err != nil {
			return err
		}
	}
	return nil
}
