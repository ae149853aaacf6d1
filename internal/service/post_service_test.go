package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/brandsite-api/internal/cache"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/repository"
)

// spyPostRepository 内存文章仓库，记录每次调用
type spyPostRepository struct {
	posts   map[string]*models.BlogPost
	calls   []string
	nextID  int
	listErr error
}

func newSpyPostRepository() *spyPostRepository {
	return &spyPostRepository{posts: map[string]*models.BlogPost{}}
}

func (r *spyPostRepository) record(name string) {
	r.calls = append(r.calls, name)
}

func (r *spyPostRepository) List(_ context.Context, filter repository.PostListFilter) ([]models.BlogPost, int64, error) {
	r.record("List")
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	out := make([]models.BlogPost, 0)
	for _, post := range r.posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.Tag != "" && !post.Tags.Contains(filter.Tag) {
			continue
		}
		out = append(out, *post)
	}
	if filter.Status == models.PostStatusPublished {
		sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(*out[j].PublishedAt) })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, int64(len(out)), nil
}

func (r *spyPostRepository) GetBySlug(_ context.Context, slug string, onlyPublished bool) (*models.BlogPost, error) {
	r.record("GetBySlug")
	for _, post := range r.posts {
		if post.Slug == slug && (!onlyPublished || post.IsPublished()) {
			copied := *post
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *spyPostRepository) GetByID(_ context.Context, id string) (*models.BlogPost, error) {
	r.record("GetByID")
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (r *spyPostRepository) Create(_ context.Context, post *models.BlogPost) error {
	r.record("Create")
	r.nextID++
	post.ID = fmt.Sprintf("post-%d", r.nextID)
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *spyPostRepository) Update(_ context.Context, post *models.BlogPost) error {
	r.record("Update")
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *spyPostRepository) Delete(_ context.Context, id string) (bool, error) {
	r.record("Delete")
	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

func (r *spyPostRepository) CountBySlug(_ context.Context, slug string, excludeID string) (int64, error) {
	r.record("CountBySlug")
	var count int64
	for id, post := range r.posts {
		if post.Slug == slug && id != excludeID {
			count++
		}
	}
	return count, nil
}

type fakePublicPostCache struct {
	pages       map[string]*cache.PublicPostPage
	invalidated int
}

func newFakePublicPostCache() *fakePublicPostCache {
	return &fakePublicPostCache{pages: map[string]*cache.PublicPostPage{}}
}

func (c *fakePublicPostCache) key(tag string, page, pageSize int) string {
	return cache.BuildPublicPostPageKey(int64(c.invalidated), tag, page, pageSize)
}

func (c *fakePublicPostCache) Get(_ context.Context, tag string, page, pageSize int) (*cache.PublicPostPage, bool, error) {
	value, ok := c.pages[c.key(tag, page, pageSize)]
	return value, ok, nil
}

func (c *fakePublicPostCache) Set(_ context.Context, tag string, page, pageSize int, value *cache.PublicPostPage) error {
	c.pages[c.key(tag, page, pageSize)] = value
	return nil
}

func (c *fakePublicPostCache) Invalidate(context.Context) error {
	c.invalidated++
	return nil
}

type steppingClock struct {
	current time.Time
}

func (c *steppingClock) Now() time.Time {
	c.current = c.current.Add(time.Minute)
	return c.current
}

func newTestPostService() (*PostService, *spyPostRepository, *steppingClock) {
	repo := newSpyPostRepository()
	svc := NewPostService(repo, nil)
	clock := &steppingClock{current: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	svc.SetClock(clock.Now)
	return svc, repo, clock
}

func testSession() SessionGuard {
	return NewEditorSession("editor-1", "editor@example.com")
}

func TestCreateOrUpdateWithoutSessionMakesNoRepositoryCalls(t *testing.T) {
	svc, repo, _ := newTestPostService()
	ctx := context.Background()

	_, err := svc.CreateOrUpdate(ctx, Anonymous, PostInput{Title: "T", Content: "C"}, models.PostStatusPublished)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("create without session want ErrAuthRequired got %v", err)
	}
	_, err = svc.CreateOrUpdate(ctx, nil, PostInput{ID: "post-1", Title: "T"}, models.PostStatusDraft)
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("update with nil session want ErrAuthRequired got %v", err)
	}
	if err := svc.Delete(ctx, Anonymous, "post-1"); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("delete without session want ErrAuthRequired got %v", err)
	}
	if _, _, err := svc.ListAdmin(ctx, Anonymous, PostQuery{}); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("admin list without session want ErrAuthRequired got %v", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("expected zero repository calls, got %v", repo.calls)
	}
}

func TestCreateDraftAssignsAuthorAndDerivesSlug(t *testing.T) {
	svc, repo, _ := newTestPostService()
	post, err := svc.CreateOrUpdate(context.Background(), testSession(), PostInput{
		Title: "Advanced Threat Intelligence: What 2025 Brings",
		Tags:  []string{"threat", "osint", "threat"},
	}, "")
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if post.ID == "" || post.AuthorID != "editor-1" {
		t.Fatalf("unexpected id/author: %s/%s", post.ID, post.AuthorID)
	}
	if post.Status != models.PostStatusDraft {
		t.Fatalf("new post should default to draft, got %s", post.Status)
	}
	if post.Slug != "advanced-threat-intelligence-what-2025-brings" {
		t.Fatalf("unexpected slug: %s", post.Slug)
	}
	if len(post.Tags) != 2 {
		t.Fatalf("duplicate tags should collapse, got %v", post.Tags)
	}
	if post.PublishedAt != nil {
		t.Fatalf("draft must not have published_at")
	}
	if post.CreatedAt.IsZero() || !post.UpdatedAt.Equal(post.CreatedAt) {
		t.Fatalf("timestamps not set: created=%s updated=%s", post.CreatedAt, post.UpdatedAt)
	}
	writes := 0
	for _, call := range repo.calls {
		if call == "Create" || call == "Update" || call == "Delete" {
			writes++
		}
	}
	if writes != 1 {
		t.Fatalf("expected exactly one repository write, got %v", repo.calls)
	}
}

func TestCreateWithoutTitleFailsValidation(t *testing.T) {
	svc, repo, _ := newTestPostService()
	_, err := svc.CreateOrUpdate(context.Background(), testSession(), PostInput{Content: "body"}, models.PostStatusDraft)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || !validationErr.HasField("title") {
		t.Fatalf("expected title validation error, got %v", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("validation failure must not touch repository, got %v", repo.calls)
	}
}

func TestPublishWithEmptyContentFailsButDraftSucceeds(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()
	image := "https://cdn.example.com/cover.png"
	excerpt := "summary"
	input := PostInput{Title: "Complete Post", Excerpt: &excerpt, ImageURL: &image, Tags: []string{"a"}, Content: ""}

	_, err := svc.CreateOrUpdate(ctx, testSession(), input, models.PostStatusPublished)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || !validationErr.HasField("content") {
		t.Fatalf("expected content violation, got %v", err)
	}

	post, err := svc.CreateOrUpdate(ctx, testSession(), input, models.PostStatusDraft)
	if err != nil {
		t.Fatalf("saving as draft should succeed: %v", err)
	}
	if post.Status != models.PostStatusDraft {
		t.Fatalf("status want draft got %s", post.Status)
	}
}

func TestPublishedAtSetExactlyOnce(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()
	session := testSession()

	post, err := svc.CreateOrUpdate(ctx, session, PostInput{Title: "Once", Content: "body"}, models.PostStatusDraft)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	input := PostInput{ID: post.ID, Title: "Once", Content: "body"}

	published, err := svc.CreateOrUpdate(ctx, session, input, models.PostStatusPublished)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatalf("published_at should be stamped")
	}
	first := *published.PublishedAt

	republished, err := svc.CreateOrUpdate(ctx, session, input, models.PostStatusPublished)
	if err != nil {
		t.Fatalf("re-save while published failed: %v", err)
	}
	if !republished.PublishedAt.Equal(first) {
		t.Fatalf("published -> published must not re-stamp")
	}

	drafted, err := svc.CreateOrUpdate(ctx, session, input, models.PostStatusDraft)
	if err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}
	if drafted.PublishedAt == nil || !drafted.PublishedAt.Equal(first) {
		t.Fatalf("published_at must never be cleared")
	}

	again, err := svc.CreateOrUpdate(ctx, session, input, models.PostStatusPublished)
	if err != nil {
		t.Fatalf("re-publish failed: %v", err)
	}
	if !again.PublishedAt.Equal(first) {
		t.Fatalf("published_at want %s got %s", first, again.PublishedAt)
	}
	if !again.UpdatedAt.After(first) {
		t.Fatalf("updated_at should be refreshed on every save")
	}
}

func TestArchiveAndRestoreTransitions(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()
	session := testSession()

	post, err := svc.CreateOrUpdate(ctx, session, PostInput{Title: "Loose Flow"}, models.PostStatusArchived)
	if err != nil {
		t.Fatalf("draft -> archived should be allowed: %v", err)
	}
	input := PostInput{ID: post.ID, Title: "Loose Flow"}
	if _, err := svc.CreateOrUpdate(ctx, session, input, models.PostStatusDraft); err != nil {
		t.Fatalf("archived -> draft should be allowed: %v", err)
	}
	input.Content = "now with body"
	restored, err := svc.CreateOrUpdate(ctx, session, input, models.PostStatusPublished)
	if err != nil {
		t.Fatalf("archived/draft -> published should be allowed with content: %v", err)
	}
	if restored.Status != models.PostStatusPublished {
		t.Fatalf("status want published got %s", restored.Status)
	}
}

func TestCreateOrUpdateRejectsUnknownStatus(t *testing.T) {
	svc, repo, _ := newTestPostService()
	_, err := svc.CreateOrUpdate(context.Background(), testSession(), PostInput{Title: "T"}, models.PostStatus("scheduled"))
	if !errors.Is(err, ErrInvalidPostStatus) {
		t.Fatalf("want ErrInvalidPostStatus got %v", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("invalid status must not touch repository, got %v", repo.calls)
	}
}

func TestDuplicateSlugIsRepositoryConflict(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()
	if _, err := svc.CreateOrUpdate(ctx, testSession(), PostInput{Title: "Same Title"}, ""); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := svc.CreateOrUpdate(ctx, testSession(), PostInput{Title: "Same  Title!"}, "")
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists got %v", err)
	}
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("duplicate slug should surface as RepositoryError, got %T", err)
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestPostService()
	_, err := svc.CreateOrUpdate(context.Background(), testSession(), PostInput{ID: "missing", Title: "T"}, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestDeleteUnknownIDLeavesListUnchanged(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()
	session := testSession()
	for _, title := range []string{"One", "Two"} {
		if _, err := svc.CreateOrUpdate(ctx, session, PostInput{Title: title}, ""); err != nil {
			t.Fatalf("create %s failed: %v", title, err)
		}
	}
	before, _, err := svc.ListAdmin(ctx, session, PostQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if err := svc.Delete(ctx, session, "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}

	after, _, err := svc.ListAdmin(ctx, session, PostQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(before) != len(after) {
		t.Fatalf("list changed after failed delete: before=%d after=%d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			t.Fatalf("list order changed after failed delete")
		}
	}
}

func TestDeleteRemovesPost(t *testing.T) {
	svc, repo, _ := newTestPostService()
	ctx := context.Background()
	post, err := svc.CreateOrUpdate(ctx, testSession(), PostInput{Title: "Gone"}, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(ctx, testSession(), post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.posts[post.ID]; ok {
		t.Fatalf("post should be hard deleted")
	}
}

func TestListPublicOnlyPublishedOrderedByPublishedAt(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()
	session := testSession()

	statuses := []models.PostStatus{
		models.PostStatusPublished,
		models.PostStatusDraft,
		models.PostStatusPublished,
		models.PostStatusArchived,
		models.PostStatusPublished,
	}
	for i, status := range statuses {
		input := PostInput{Title: fmt.Sprintf("Post %d", i), Content: "body"}
		if _, err := svc.CreateOrUpdate(ctx, session, input, status); err != nil {
			t.Fatalf("create post %d failed: %v", i, err)
		}
	}

	posts, total := svc.ListPublic(ctx, PostQuery{})
	if total != 3 || len(posts) != 3 {
		t.Fatalf("public list want 3 got total=%d len=%d", total, len(posts))
	}
	for i, post := range posts {
		if post.Status != models.PostStatusPublished {
			t.Fatalf("public list leaked %s post", post.Status)
		}
		if i > 0 && post.PublishedAt.After(*posts[i-1].PublishedAt) {
			t.Fatalf("public list not ordered by published_at desc")
		}
	}
}

func TestListPublicDegradesToEmptyOnFailure(t *testing.T) {
	svc, repo, _ := newTestPostService()
	repo.listErr = errors.New("backend down")
	posts, total := svc.ListPublic(context.Background(), PostQuery{})
	if posts == nil || len(posts) != 0 || total != 0 {
		t.Fatalf("expected empty non-nil list, got %v total=%d", posts, total)
	}
}

func TestListAdminSurfacesRepositoryError(t *testing.T) {
	svc, repo, _ := newTestPostService()
	repo.listErr = errors.New("backend down")
	_, _, err := svc.ListAdmin(context.Background(), testSession(), PostQuery{})
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) || repoErr.Op != "post_list" {
		t.Fatalf("expected RepositoryError, got %v", err)
	}
}

func TestListPublicUsesCacheAndInvalidatesOnWrite(t *testing.T) {
	repo := newSpyPostRepository()
	listCache := newFakePublicPostCache()
	svc := NewPostService(repo, listCache)
	ctx := context.Background()

	if _, err := svc.CreateOrUpdate(ctx, testSession(), PostInput{Title: "Cached", Content: "body"}, models.PostStatusPublished); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if listCache.invalidated != 1 {
		t.Fatalf("write should invalidate cache once, got %d", listCache.invalidated)
	}

	svc.ListPublic(ctx, PostQuery{Page: 1, PageSize: 10})
	repo.calls = nil
	posts, _ := svc.ListPublic(ctx, PostQuery{Page: 1, PageSize: 10})
	if len(posts) != 1 {
		t.Fatalf("cached list want 1 post got %d", len(posts))
	}
	if len(repo.calls) != 0 {
		t.Fatalf("second read should hit cache, got calls %v", repo.calls)
	}
}

func TestGetByIDVisibility(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()
	draft, err := svc.CreateOrUpdate(ctx, testSession(), PostInput{Title: "Hidden"}, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetByID(ctx, Anonymous, draft.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("anonymous read of draft want ErrNotFound got %v", err)
	}
	got, err := svc.GetByID(ctx, testSession(), draft.ID)
	if err != nil || got.ID != draft.ID {
		t.Fatalf("editor read of draft failed: %v", err)
	}
	if _, err := svc.GetPublicBySlug(ctx, draft.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("public slug read of draft want ErrNotFound got %v", err)
	}
}

func TestAddExistingTagIsNoop(t *testing.T) {
	tags := models.NewTags([]string{"osint", "threat"})
	if tags.Add("osint") {
		t.Fatalf("adding existing tag should report false")
	}
	if len(tags) != 2 || tags[0] != "osint" || tags[1] != "threat" {
		t.Fatalf("tags changed: %v", tags)
	}
}

func TestPreviewSlug(t *testing.T) {
	svc, _, _ := newTestPostService()
	auto := svc.PreviewSlug("New Title", "old-slug", false)
	if auto.Slug() != "new-title" || auto.SlugTouched() {
		t.Fatalf("untouched slug should follow title, got %s", auto.Slug())
	}
	manual := svc.PreviewSlug("New Title", "My Slug", true)
	if manual.Slug() != "my-slug" || !manual.SlugTouched() {
		t.Fatalf("touched slug should be kept normalized, got %s", manual.Slug())
	}
}

func TestTransitionOnlyChangesStatus(t *testing.T) {
	svc, repo, _ := newTestPostService()
	ctx := context.Background()
	post, err := svc.CreateOrUpdate(ctx, testSession(), PostInput{Title: "Field Notes", Content: "body"}, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	published, err := svc.Transition(ctx, testSession(), post.ID, models.PostStatusPublished)
	if err != nil {
		t.Fatalf("publish transition failed: %v", err)
	}
	if published.PublishedAt == nil || published.Title != "Field Notes" {
		t.Fatalf("unexpected published post: %+v", published)
	}
	if !published.UpdatedAt.After(post.UpdatedAt) {
		t.Fatalf("updated_at should be refreshed")
	}

	if _, err := svc.Transition(ctx, testSession(), "missing", models.PostStatusArchived); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id want ErrNotFound got %v", err)
	}
	if _, err := svc.Transition(ctx, testSession(), post.ID, models.PostStatus("deleted")); !errors.Is(err, ErrInvalidPostStatus) {
		t.Fatalf("unknown status want ErrInvalidPostStatus got %v", err)
	}

	before := len(repo.calls)
	if _, err := svc.Transition(ctx, Anonymous, post.ID, models.PostStatusDraft); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("anonymous transition want ErrAuthRequired got %v", err)
	}
	if len(repo.calls) != before {
		t.Fatalf("anonymous transition must not touch repository")
	}
}

func TestEditorDraftMarksManualSlug(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()

	derived, err := svc.CreateOrUpdate(ctx, testSession(), PostInput{Title: "Field Notes"}, models.PostStatusDraft)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if svc.EditorDraft(derived).SlugTouched() {
		t.Fatalf("derived slug should not be marked as manual")
	}

	manual, err := svc.CreateOrUpdate(ctx, testSession(), PostInput{Title: "Field Notes Two", Slug: "notes-2"}, models.PostStatusDraft)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	draft := svc.EditorDraft(manual)
	if !draft.SlugTouched() || draft.Slug() != "notes-2" {
		t.Fatalf("custom slug should be marked as manual, got %q %v", draft.Slug(), draft.SlugTouched())
	}
	draft.SetTitle("Renamed")
	if draft.Slug() != "notes-2" {
		t.Fatalf("manual slug should survive a title change, got %q", draft.Slug())
	}

	if svc.EditorDraft(nil).SlugTouched() {
		t.Fatalf("nil post should start untouched")
	}
}

func TestPreviewSlugClearedManualSlugFollowsTitle(t *testing.T) {
	svc, _, _ := newTestPostService()
	draft := svc.PreviewSlug("Weekly Brief", "   ", true)
	if draft.SlugTouched() || draft.Slug() != "weekly-brief" {
		t.Fatalf("cleared slug should resume following title, got %q %v", draft.Slug(), draft.SlugTouched())
	}
}
