package service

import (
	"context"

	"novelshelf/internal/models"
	"novelshelf/internal/repository"
)

type novelRepoStub struct {
	createFn              func(context.Context, *models.Novel) error
	getByIDFn             func(context.Context, uint) (*models.Novel, error)
	listFn                func(context.Context, repository.CatalogFilter) ([]*models.Novel, int64, error)
	updateFn              func(context.Context, *models.Novel) error
	deleteFn              func(context.Context, uint) error
	incrementPopularityFn func(context.Context, uint) error
	distinctTagsFn        func(context.Context) ([]string, error)
}

func (s *novelRepoStub) Create(ctx context.Context, novel *models.Novel) error {
	return s.createFn(ctx, novel)
}
func (s *novelRepoStub) GetByID(ctx context.Context, id uint) (*models.Novel, error) {
	return s.getByIDFn(ctx, id)
}
func (s *novelRepoStub) List(ctx context.Context, filter repository.CatalogFilter) ([]*models.Novel, int64, error) {
	return s.listFn(ctx, filter)
}
func (s *novelRepoStub) Update(ctx context.Context, novel *models.Novel) error {
	return s.updateFn(ctx, novel)
}
func (s *novelRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *novelRepoStub) IncrementPopularity(ctx context.Context, id uint) error {
	return s.incrementPopularityFn(ctx, id)
}
func (s *novelRepoStub) DistinctTags(ctx context.Context) ([]string, error) {
	return s.distinctTagsFn(ctx)
}

func noopNovelRepo() *novelRepoStub {
	return &novelRepoStub{
		createFn:  func(context.Context, *models.Novel) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Novel, error) { return &models.Novel{ID: id}, nil },
		listFn: func(context.Context, repository.CatalogFilter) ([]*models.Novel, int64, error) {
			return nil, 0, nil
		},
		updateFn:              func(context.Context, *models.Novel) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		incrementPopularityFn: func(context.Context, uint) error { return nil },
		distinctTagsFn:        func(context.Context) ([]string, error) { return nil, nil },
	}
}

type reviewRepoStub struct {
	createFn                func(context.Context, *models.Review) error
	updateFn                func(context.Context, *models.Review) error
	deleteFn                func(context.Context, uint) error
	getByIDFn               func(context.Context, uint, uint) (*models.Review, error)
	getByNovelIDFn          func(context.Context, uint, int, int, uint, string) ([]*models.Review, int64, error)
	getByUserIDFn           func(context.Context, uint, int, int, uint) ([]*models.Review, error)
	getUserReviewForNovelFn func(context.Context, uint, uint) (*models.Review, error)
	likeFn                  func(context.Context, uint, uint) error
	unlikeFn                func(context.Context, uint, uint) error
	isLikedFn               func(context.Context, uint, uint) (bool, error)
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *reviewRepoStub) GetByNovelID(ctx context.Context, novelID uint, limit, offset int, currentUserID uint, sort string) ([]*models.Review, int64, error) {
	return s.getByNovelIDFn(ctx, novelID, limit, offset, currentUserID, sort)
}
func (s *reviewRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Review, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *reviewRepoStub) GetUserReviewForNovel(ctx context.Context, userID, novelID uint) (*models.Review, error) {
	return s.getUserReviewForNovelFn(ctx, userID, novelID)
}
func (s *reviewRepoStub) Like(ctx context.Context, userID, reviewID uint) error {
	return s.likeFn(ctx, userID, reviewID)
}
func (s *reviewRepoStub) Unlike(ctx context.Context, userID, reviewID uint) error {
	return s.unlikeFn(ctx, userID, reviewID)
}
func (s *reviewRepoStub) IsLiked(ctx context.Context, userID, reviewID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, reviewID)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn: func(context.Context, *models.Review) error { return nil },
		updateFn: func(context.Context, *models.Review) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Review, error) {
			return &models.Review{ID: id}, nil
		},
		getByNovelIDFn: func(context.Context, uint, int, int, uint, string) ([]*models.Review, int64, error) {
			return nil, 0, nil
		},
		getByUserIDFn: func(context.Context, uint, int, int, uint) ([]*models.Review, error) {
			return nil, nil
		},
		getUserReviewForNovelFn: func(context.Context, uint, uint) (*models.Review, error) { return nil, nil },
		likeFn:                  func(context.Context, uint, uint) error { return nil },
		unlikeFn:                func(context.Context, uint, uint) error { return nil },
		isLikedFn:               func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type listRepoStub struct {
	upsertFn       func(context.Context, *models.NovelListEntry) error
	getEntryFn     func(context.Context, uint, uint) (*models.NovelListEntry, error)
	getByUserIDFn  func(context.Context, uint, models.ReadingStatus, int, int) ([]models.NovelListEntry, int64, error)
	getFavoritesFn func(context.Context, uint, int, int) ([]models.NovelListEntry, error)
	deleteFn       func(context.Context, uint, uint) error
	statusCountsFn func(context.Context, uint) (map[models.ReadingStatus]int64, error)
}

func (s *listRepoStub) Upsert(ctx context.Context, entry *models.NovelListEntry) error {
	return s.upsertFn(ctx, entry)
}
func (s *listRepoStub) GetEntry(ctx context.Context, userID, novelID uint) (*models.NovelListEntry, error) {
	return s.getEntryFn(ctx, userID, novelID)
}
func (s *listRepoStub) GetByUserID(ctx context.Context, userID uint, status models.ReadingStatus, limit, offset int) ([]models.NovelListEntry, int64, error) {
	return s.getByUserIDFn(ctx, userID, status, limit, offset)
}
func (s *listRepoStub) GetFavorites(ctx context.Context, userID uint, limit, offset int) ([]models.NovelListEntry, error) {
	return s.getFavoritesFn(ctx, userID, limit, offset)
}
func (s *listRepoStub) Delete(ctx context.Context, userID, novelID uint) error {
	return s.deleteFn(ctx, userID, novelID)
}
func (s *listRepoStub) StatusCounts(ctx context.Context, userID uint) (map[models.ReadingStatus]int64, error) {
	return s.statusCountsFn(ctx, userID)
}

func noopListRepo() *listRepoStub {
	return &listRepoStub{
		upsertFn: func(context.Context, *models.NovelListEntry) error { return nil },
		getEntryFn: func(_ context.Context, userID, novelID uint) (*models.NovelListEntry, error) {
			return &models.NovelListEntry{UserID: userID, NovelID: novelID}, nil
		},
		getByUserIDFn: func(context.Context, uint, models.ReadingStatus, int, int) ([]models.NovelListEntry, int64, error) {
			return nil, 0, nil
		},
		getFavoritesFn: func(context.Context, uint, int, int) ([]models.NovelListEntry, error) { return nil, nil },
		deleteFn:       func(context.Context, uint, uint) error { return nil },
		statusCountsFn: func(context.Context, uint) (map[models.ReadingStatus]int64, error) { return nil, nil },
	}
}

type followRepoStub struct {
	followFn         func(context.Context, uint, uint) error
	unfollowFn       func(context.Context, uint, uint) error
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	getFollowersFn   func(context.Context, uint, int, int) ([]models.User, error)
	getFollowingFn   func(context.Context, uint, int, int) ([]models.User, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followingID uint) error {
	return s.followFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followingID uint) error {
	return s.unfollowFn(ctx, followerID, followingID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:         func(context.Context, uint, uint) error { return nil },
		unfollowFn:       func(context.Context, uint, uint) error { return nil },
		isFollowingFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		getFollowersFn:   func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		getFollowingFn:   func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		countFollowersFn: func(context.Context, uint) (int64, error) { return 0, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string, uint) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int, uint) ([]models.User, error)
	searchFn        func(context.Context, string, int, int, uint) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.User, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	return s.getByUsernameFn(ctx, username, currentUserID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]models.User, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int, currentUserID uint) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset, currentUserID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string, uint) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int, uint) ([]models.User, error) { return nil, nil },
		searchFn:        func(context.Context, string, int, int, uint) ([]models.User, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn  func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	getByNovelIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn         func(context.Context, int, int, uint) ([]*models.Post, error)
	feedFn         func(context.Context, uint, int, int) ([]*models.Post, error)
	updateFn       func(context.Context, *models.Post) error
	deleteFn       func(context.Context, uint) error
	likeFn         func(context.Context, uint, uint) error
	unlikeFn       func(context.Context, uint, uint) error
	isLikedFn      func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) GetByNovelID(ctx context.Context, novelID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByNovelIDFn(ctx, novelID, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.feedFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByUserIDFn:  func(context.Context, uint, int, int, uint) ([]*models.Post, error) { return nil, nil },
		getByNovelIDFn: func(context.Context, uint, int, int, uint) ([]*models.Post, error) { return nil, nil },
		listFn:         func(context.Context, int, int, uint) ([]*models.Post, error) { return nil, nil },
		feedFn:         func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		updateFn:       func(context.Context, *models.Post) error { return nil },
		deleteFn:       func(context.Context, uint) error { return nil },
		likeFn:         func(context.Context, uint, uint) error { return nil },
		unlikeFn:       func(context.Context, uint, uint) error { return nil },
		isLikedFn:      func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint, uint) (*models.Comment, error)
	getByReviewIDFn func(context.Context, uint, int, int, uint) ([]*models.Comment, error)
	getByPostIDFn   func(context.Context, uint, int, int, uint) ([]*models.Comment, error)
	getRepliesFn    func(context.Context, uint, int, int, uint) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, uint) error
	likeFn          func(context.Context, uint, uint) error
	unlikeFn        func(context.Context, uint, uint) error
	isLikedFn       func(context.Context, uint, uint) (bool, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *commentRepoStub) GetByReviewID(ctx context.Context, reviewID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.getByReviewIDFn(ctx, reviewID, limit, offset, currentUserID)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset, currentUserID)
}
func (s *commentRepoStub) GetReplies(ctx context.Context, parentID uint, limit, offset int, currentUserID uint) ([]*models.Comment, error) {
	return s.getRepliesFn(ctx, parentID, limit, offset, currentUserID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) Like(ctx context.Context, userID, commentID uint) error {
	return s.likeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Unlike(ctx context.Context, userID, commentID uint) error {
	return s.unlikeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(context.Context, *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		getByReviewIDFn: func(context.Context, uint, int, int, uint) ([]*models.Comment, error) { return nil, nil },
		getByPostIDFn:   func(context.Context, uint, int, int, uint) ([]*models.Comment, error) { return nil, nil },
		getRepliesFn:    func(context.Context, uint, int, int, uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:        func(context.Context, *models.Comment) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		likeFn:          func(context.Context, uint, uint) error { return nil },
		unlikeFn:        func(context.Context, uint, uint) error { return nil },
		isLikedFn:       func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type submissionRepoStub struct {
	createFn       func(context.Context, *models.NovelSubmission) error
	getByIDFn      func(context.Context, uint) (*models.NovelSubmission, error)
	listByStatusFn func(context.Context, models.NovelSubmissionStatus, int, int) ([]models.NovelSubmission, int64, error)
	listByUserFn   func(context.Context, uint, int, int) ([]models.NovelSubmission, error)
	approveFn      func(context.Context, uint, uint, string) (*models.Novel, error)
	rejectFn       func(context.Context, uint, uint, string) error
}

func (s *submissionRepoStub) Create(ctx context.Context, submission *models.NovelSubmission) error {
	return s.createFn(ctx, submission)
}
func (s *submissionRepoStub) GetByID(ctx context.Context, id uint) (*models.NovelSubmission, error) {
	return s.getByIDFn(ctx, id)
}
func (s *submissionRepoStub) ListByStatus(ctx context.Context, status models.NovelSubmissionStatus, limit, offset int) ([]models.NovelSubmission, int64, error) {
	return s.listByStatusFn(ctx, status, limit, offset)
}
func (s *submissionRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.NovelSubmission, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *submissionRepoStub) Approve(ctx context.Context, id, reviewerID uint, feedback string) (*models.Novel, error) {
	return s.approveFn(ctx, id, reviewerID, feedback)
}
func (s *submissionRepoStub) Reject(ctx context.Context, id, reviewerID uint, feedback string) error {
	return s.rejectFn(ctx, id, reviewerID, feedback)
}

func noopSubmissionRepo() *submissionRepoStub {
	return &submissionRepoStub{
		createFn: func(context.Context, *models.NovelSubmission) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.NovelSubmission, error) {
			return &models.NovelSubmission{ID: id}, nil
		},
		listByStatusFn: func(context.Context, models.NovelSubmissionStatus, int, int) ([]models.NovelSubmission, int64, error) {
			return nil, 0, nil
		},
		listByUserFn: func(context.Context, uint, int, int) ([]models.NovelSubmission, error) { return nil, nil },
		approveFn: func(context.Context, uint, uint, string) (*models.Novel, error) {
			return &models.Novel{ID: 1}, nil
		},
		rejectFn: func(context.Context, uint, uint, string) error { return nil },
	}
}
