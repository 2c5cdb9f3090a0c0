package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"novelshelf/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll truncates all seeded tables.
func (s *Seeder) ClearAll() error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comment_likes, post_likes, review_likes, comments, posts,
		reviews, novel_list_entries, follows, novel_submissions, novels, users
		RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedCatalog creates `count` novels on top of the starter catalog.
func (s *Seeder) SeedCatalog(count int) ([]models.Novel, error) {
	novels := make([]models.Novel, 0, count)
	for i := 0; i < count; i++ {
		novel, err := s.factory.CreateNovel()
		if err != nil {
			log.Printf("Failed to create novel: %v", err)
			continue
		}
		novels = append(novels, *novel)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d novels...", i)
		}
	}
	return novels, nil
}

// SeedSocialMesh creates `count` users and a sparse random follow graph
// between them.
func (s *Seeder) SeedSocialMesh(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	// Always include a few fixed accounts so developers can log in without
	// hunting through generated usernames.
	if count >= 3 {
		for _, name := range []string{"admin", "reader", "test"} {
			name := name
			user, err := s.factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
				u.IsAdmin = name == "admin"
			})
			if err != nil {
				continue
			}
			users = append(users, *user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, *user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range users {
		// each user follows ~10% of the others, capped at 15
		n := r.Intn(16)
		for j := 0; j < n; j++ {
			target := &users[r.Intn(len(users))]
			if target.ID == users[i].ID {
				continue
			}
			// unique index makes duplicate edges a no-op failure; ignore
			_ = s.factory.CreateFollow(&users[i], target)
		}
	}

	return users, nil
}

// SeedEngagement layers reviews, reading lists, posts, comments and likes on
// top of existing users and novels, then recomputes catalog aggregates.
func (s *Seeder) SeedEngagement(users []models.User, novels []models.Novel, numPosts int) error {
	if len(users) == 0 || len(novels) == 0 {
		return fmt.Errorf("engagement seeding needs users and novels")
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Reviews: each user reviews a handful of distinct novels. The unique
	// (user, novel) index is respected by tracking what we already used.
	reviews := make([]models.Review, 0, len(users)*3)
	for i := range users {
		reviewed := make(map[uint]bool)
		n := r.Intn(5)
		for j := 0; j < n; j++ {
			novel := &novels[r.Intn(len(novels))]
			if reviewed[novel.ID] {
				continue
			}
			reviewed[novel.ID] = true
			review, err := s.factory.CreateReview(&users[i], novel)
			if err != nil {
				continue
			}
			reviews = append(reviews, *review)
		}

		// Reading lists, same dedupe discipline.
		listed := make(map[uint]bool)
		m := r.Intn(8)
		for j := 0; j < m; j++ {
			novel := &novels[r.Intn(len(novels))]
			if listed[novel.ID] {
				continue
			}
			listed[novel.ID] = true
			if _, err := s.factory.CreateListEntry(&users[i], novel); err != nil {
				continue
			}
		}
	}
	log.Printf("✓ %d reviews created", len(reviews))

	// Posts: roughly half reference a novel.
	posts := make([]models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		user := &users[r.Intn(len(users))]
		var novel *models.Novel
		if r.Float32() < 0.5 {
			novel = &novels[r.Intn(len(novels))]
		}
		post, err := s.factory.CreatePost(user, novel)
		if err != nil {
			continue
		}
		posts = append(posts, *post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	log.Printf("✓ %d posts created", len(posts))

	// Comments and likes over the generated content.
	for i := range posts {
		for j := 0; j < r.Intn(4); j++ {
			user := &users[r.Intn(len(users))]
			if _, err := s.factory.CreateComment(user, nil, &posts[i].ID); err != nil {
				continue
			}
		}
		for j := 0; j < r.Intn(6); j++ {
			_ = s.factory.CreatePostLike(&users[r.Intn(len(users))], &posts[i])
		}
	}
	for i := range reviews {
		for j := 0; j < r.Intn(3); j++ {
			user := &users[r.Intn(len(users))]
			if _, err := s.factory.CreateComment(user, &reviews[i].ID, nil); err != nil {
				continue
			}
		}
		for j := 0; j < r.Intn(5); j++ {
			_ = s.factory.CreateReviewLike(&users[r.Intn(len(users))], &reviews[i])
		}
	}

	if s.opts.DryRun {
		return nil
	}
	return s.recomputeNovelAggregates()
}

// recomputeNovelAggregates rebuilds rating and vote counts from the reviews
// table so seeded catalog pages sort sensibly.
func (s *Seeder) recomputeNovelAggregates() error {
	return s.db.Exec(`
		UPDATE novels SET
			rating = COALESCE(agg.avg_overall, 0),
			rating_votes = COALESCE(agg.votes, 0)
		FROM (
			SELECT novel_id, ROUND(AVG(overall)::numeric, 1) AS avg_overall, COUNT(*) AS votes
			FROM reviews
			WHERE deleted_at IS NULL
			GROUP BY novel_id
		) agg
		WHERE novels.id = agg.novel_id
	`).Error
}

// Seed populates the database with test data using the provided options.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d novels and %d posts...",
		opts.NumUsers, opts.NumNovels, opts.NumPosts)

	s := NewSeeder(db, opts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := StarterCatalog(db); err != nil {
		return fmt.Errorf("failed to seed starter catalog: %w", err)
	}

	novels, err := s.SeedCatalog(opts.NumNovels)
	if err != nil {
		return fmt.Errorf("failed to create novels: %w", err)
	}
	log.Printf("✓ %d novels created", len(novels))

	users, err := s.SeedSocialMesh(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	if err := s.SeedEngagement(users, novels, opts.NumPosts); err != nil {
		return fmt.Errorf("failed to seed engagement: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}
