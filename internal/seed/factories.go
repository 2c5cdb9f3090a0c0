// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"novelshelf/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumNovels   int
	NumPosts    int
	ShouldClean bool

	// DryRun builds entities without writing to the database.
	DryRun bool
	// SkipBcrypt stores plaintext passwords; dev fast mode only.
	SkipBcrypt bool
	// MaxDays is how far back generated timestamps may reach. Defaults to 90.
	MaxDays int
}

var (
	titleOpeners = []string{
		"Reborn as", "Chronicles of", "Return of", "Rise of", "The Last",
		"Legend of", "Ascension of", "Records of", "Memoirs of", "Path of",
		"Reign of", "Shadow of", "Throne of", "Blade of", "Heir of",
	}

	titleSubjects = []string{
		"the Sword Saint", "the Demon Emperor", "a Cultivation Prodigy",
		"the Forgotten Mage", "the Dungeon Architect", "the Ninth Prince",
		"the Starforged Knight", "an Immortal Alchemist", "the Crimson Regent",
		"the Tower Climber", "a Villainess", "the Necromancer King",
		"the Martial God", "the Abyss Walker", "the Archive Keeper",
	}

	genrePool = []string{
		"fantasy", "action", "adventure", "romance", "comedy", "drama",
		"xianxia", "wuxia", "sci-fi", "mystery", "horror", "slice of life",
		"isekai", "litrpg", "martial arts", "tragedy", "psychological",
	}

	tagPool = []string{
		"system", "dungeon", "regression", "reincarnation", "weak to strong",
		"overpowered protagonist", "kingdom building", "academy", "tower",
		"anti-hero", "revenge", "female lead", "slow burn", "time loop",
		"apocalypse", "crafting", "non-human protagonist",
	}

	languagePool = []string{"korean", "chinese", "japanese", "english"}

	reviewOpinions = []string{
		"The pacing slows around the midpoint but the payoff is worth it.",
		"Worldbuilding is the strongest part; the power system stays consistent.",
		"Side characters get real arcs instead of cheering from the sidelines.",
		"Translation quality dips in the later chapters.",
		"The protagonist's decisions actually have consequences, which is rare.",
		"Drops off after the tournament arc but recovers.",
		"Binged the whole thing in a weekend. No regrets.",
	}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// randomPastTime returns a timestamp spread across the last MaxDays days so
// seeded feeds do not all share one creation instant.
func (f *Factory) randomPastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func pickSome(pool []string, min, max int) []string {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	n := min + r.Intn(max-min+1)
	picked := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for len(picked) < n {
		candidate := pool[r.Intn(len(pool))]
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		picked = append(picked, candidate)
	}
	return picked
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Bio:       gofakeit.Sentence(10),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s", user.Username)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildNovel constructs a catalog entry without persisting it. Useful for
// batching and dry runs.
func (f *Factory) BuildNovel(overrides ...func(*models.Novel)) *models.Novel {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	opener := titleOpeners[r.Intn(len(titleOpeners))]
	subject := titleSubjects[r.Intn(len(titleSubjects))]

	novel := &models.Novel{
		Name:             fmt.Sprintf("%s %s", opener, subject),
		OriginalLanguage: languagePool[r.Intn(len(languagePool))],
		Authors:          []string{gofakeit.Name()},
		Genres:           pickSome(genrePool, 1, 4),
		Tags:             pickSome(tagPool, 2, 6),
		CoverURL:         fmt.Sprintf("https://picsum.photos/seed/%s/400/600", gofakeit.UUID()),
		Synopsis:         gofakeit.Paragraph(2, 4, 8, "\n"),
		Year:             gofakeit.Number(1998, 2025),
		IsCompleted:      r.Float32() < 0.3,
		ChapterCount:     gofakeit.Number(10, 3000),
		Popularity:       gofakeit.Number(0, 5000),
		CreatedAt:        f.randomPastTime(),
	}

	for _, override := range overrides {
		override(novel)
	}
	return novel
}

// CreateNovel constructs and persists a sample catalog entry.
func (f *Factory) CreateNovel(overrides ...func(*models.Novel)) (*models.Novel, error) {
	novel := f.BuildNovel(overrides...)

	if f.opts.DryRun {
		f.nextID++
		novel.ID = f.nextID
		log.Printf("[dry-run] CreateNovel: %q", novel.Name)
		return novel, nil
	}

	if err := f.db.Create(novel).Error; err != nil {
		return nil, err
	}
	return novel, nil
}

// BuildReview constructs a review with consistent sub-ratings without
// persisting it.
func (f *Factory) BuildReview(user *models.User, novel *models.Novel, overrides ...func(*models.Review)) *models.Review {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Cluster the four categories around a base sentiment so reviews read
	// coherently rather than as four independent dice rolls.
	base := 1.5 + r.Float64()*3.5
	jitter := func() float64 {
		v := base + (r.Float64()-0.5)
		return math.Round(math.Min(5, math.Max(0, v))*2) / 2
	}

	review := &models.Review{
		UserID:     user.ID,
		NovelID:    novel.ID,
		Plot:       jitter(),
		Characters: jitter(),
		World:      jitter(),
		Grammar:    jitter(),
		Content:    reviewOpinions[r.Intn(len(reviewOpinions))] + " " + gofakeit.Paragraph(1, 2, 8, " "),
		CreatedAt:  f.randomPastTime(),
	}
	review.Overall = review.ComputeOverall()

	for _, override := range overrides {
		override(review)
	}
	return review
}

// CreateReview constructs and persists a review by user on novel.
func (f *Factory) CreateReview(user *models.User, novel *models.Novel, overrides ...func(*models.Review)) (*models.Review, error) {
	review := f.BuildReview(user, novel, overrides...)

	if f.opts.DryRun {
		f.nextID++
		review.ID = f.nextID
		log.Printf("[dry-run] CreateReview: user=%d novel=%d overall=%.1f", review.UserID, review.NovelID, review.Overall)
		return review, nil
	}

	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateListEntry persists a reading-list record for user on novel.
func (f *Factory) CreateListEntry(user *models.User, novel *models.Novel, overrides ...func(*models.NovelListEntry)) (*models.NovelListEntry, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	statuses := []models.ReadingStatus{
		models.ReadingStatusReading,
		models.ReadingStatusPlanning,
		models.ReadingStatusCompleted,
	}
	status := statuses[r.Intn(len(statuses))]

	entry := &models.NovelListEntry{
		UserID:  user.ID,
		NovelID: novel.ID,
		Status:  status,
	}
	switch status {
	case models.ReadingStatusReading:
		if novel.ChapterCount > 0 {
			entry.CurrentChapter = r.Intn(novel.ChapterCount)
		}
	case models.ReadingStatusCompleted:
		entry.CurrentChapter = novel.ChapterCount
		entry.Score = math.Round(r.Float64()*5*2) / 2
	}
	entry.Favorite = r.Float32() < 0.15

	for _, override := range overrides {
		override(entry)
	}

	if f.opts.DryRun {
		f.nextID++
		entry.ID = f.nextID
		return entry, nil
	}

	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreatePost constructs and persists an activity post, optionally tied to a
// novel.
func (f *Factory) CreatePost(user *models.User, novel *models.Novel, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
		CreatedAt: f.randomPastTime(),
	}
	if novel != nil {
		post.NovelID = &novel.ID
	}

	for _, override := range overrides {
		override(post)
	}

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: user=%d novel=%v", post.UserID, post.NovelID)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on either a review or a post.
func (f *Factory) CreateComment(user *models.User, reviewID, postID *uint, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:   user.ID,
		ReviewID: reviewID,
		PostID:   postID,
		Content:  gofakeit.Sentence(8),
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreatePostLike persists a like from `user` on `post`.
func (f *Factory) CreatePostLike(user *models.User, post *models.Post) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.PostLike{UserID: user.ID, PostID: post.ID}).Error
}

// CreateReviewLike persists a like from `user` on `review`.
func (f *Factory) CreateReviewLike(user *models.User, review *models.Review) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.ReviewLike{UserID: user.ID, ReviewID: review.ID}).Error
}

// CreateFollow persists a follower -> following edge between two users.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Follow{FollowerID: follower.ID, FollowingID: following.ID}).Error
}
