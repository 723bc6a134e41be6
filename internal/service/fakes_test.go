package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// store is an in-memory stand-in for the postgres repositories. It applies
// post filters with PostFilter.Match and orders like the SQL does.
type store struct {
	posts      map[int64]model.Post
	comments   map[int64]model.Comment
	categories map[int64]model.Category
	locations  map[int64]model.Location
	users      map[uuid.UUID]model.User
	nextID     int64

	findErr   error
	updateErr error
}

func newStore() *store {
	return &store{
		posts:      make(map[int64]model.Post),
		comments:   make(map[int64]model.Comment),
		categories: make(map[int64]model.Category),
		locations:  make(map[int64]model.Location),
		users:      make(map[uuid.UUID]model.User),
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) repository(rdb redisrepo.Default) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post:     &postStore{s},
			Comment:  &commentStore{s},
			Category: &categoryStore{s},
			Location: &locationStore{s},
			User:     &userStore{s},
		},
		Redis: &redisrepo.RedisRepository{Default: rdb},
	}
}

func fkViolation() error {
	return &pgconn.PgError{Code: "23503"}
}

func (s *store) full(p model.Post) *model.FullPost {
	author := s.users[p.AuthorID]
	post := &model.FullPost{
		Post: p,
		Author: model.UserAuthor{
			ID:        author.ID,
			Username:  author.Username,
			FirstName: author.FirstName,
			LastName:  author.LastName,
		},
	}
	if p.CategoryID != nil {
		c := s.categories[*p.CategoryID]
		post.Category = &model.PostCategory{ID: c.ID, Title: c.Title, Slug: c.Slug, IsPublished: c.IsPublished}
	}
	if p.LocationID != nil {
		l := s.locations[*p.LocationID]
		post.Location = &model.PostLocation{ID: l.ID, Name: l.Name, IsPublished: l.IsPublished}
	}
	for _, c := range s.comments {
		if c.PostID == p.ID {
			post.CommentCount++
		}
	}
	return post
}

func (s *store) references(p model.Post) error {
	if _, ok := s.users[p.AuthorID]; !ok {
		return fkViolation()
	}
	if p.CategoryID != nil {
		if _, ok := s.categories[*p.CategoryID]; !ok {
			return fkViolation()
		}
	}
	if p.LocationID != nil {
		if _, ok := s.locations[*p.LocationID]; !ok {
			return fkViolation()
		}
	}
	return nil
}

type postStore struct{ *store }

func (s *postStore) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if err := s.references(post); err != nil {
		return nil, err
	}
	post.ID = s.id()
	post.CreatedAt = time.Now()
	s.posts[post.ID] = post
	return &post, nil
}

func (s *postStore) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	post, ok := s.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s.full(post), nil
}

func (s *postStore) matching(filter model.PostFilter) []*model.FullPost {
	var posts []*model.FullPost
	for _, p := range s.posts {
		full := s.full(p)
		if filter.Match(full) {
			posts = append(posts, full)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i].Post, posts[j].Post
		if !a.PubDate.Equal(b.PubDate) {
			return a.PubDate.After(b.PubDate)
		}
		return a.ID < b.ID
	})
	return posts
}

func (s *postStore) Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	posts := s.matching(filter)
	if offset >= len(posts) {
		return []*model.FullPost{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (s *postStore) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	if s.findErr != nil {
		return 0, s.findErr
	}
	return len(s.matching(filter)), nil
}

func (s *postStore) Update(ctx context.Context, post model.Post) error {
	existing, ok := s.posts[post.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if err := s.references(post); err != nil {
		return err
	}
	post.CreatedAt = existing.CreatedAt
	s.posts[post.ID] = post
	return nil
}

func (s *postStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.posts, id)
	for commentID, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, commentID)
		}
	}
	return nil
}

type commentStore struct{ *store }

func (s *commentStore) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if _, ok := s.posts[comment.PostID]; !ok {
		return nil, fkViolation()
	}
	comment.ID = s.id()
	comment.CreatedAt = time.Now()
	s.comments[comment.ID] = comment
	return &comment, nil
}

func (s *commentStore) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (s *commentStore) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	comments := []*model.FullComment{}
	for _, c := range s.comments {
		if c.PostID != postID {
			continue
		}
		author := s.users[c.AuthorID]
		comments = append(comments, &model.FullComment{
			Comment: c,
			Author:  model.UserAuthor{ID: author.ID, Username: author.Username},
		})
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Comment.ID < comments[j].Comment.ID
	})
	return comments, nil
}

func (s *commentStore) UpdateText(ctx context.Context, id int64, text string) error {
	c, ok := s.comments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.Text = text
	s.comments[id] = c
	return nil
}

func (s *commentStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.comments, id)
	return nil
}

type categoryStore struct{ *store }

func (s *categoryStore) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	for _, c := range s.categories {
		if c.Slug == category.Slug {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	category.ID = s.id()
	category.CreatedAt = time.Now()
	s.categories[category.ID] = category
	return &category, nil
}

func (s *categoryStore) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	for _, c := range s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *categoryStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := s.FindBySlug(ctx, slug)
	return err == nil, nil
}

func (s *categoryStore) SetPublished(ctx context.Context, slug string, published bool) (*model.Category, error) {
	c, err := s.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.IsPublished = published
	s.categories[c.ID] = *c
	return c, nil
}

type locationStore struct{ *store }

func (s *locationStore) Create(ctx context.Context, location model.Location) (*model.Location, error) {
	location.ID = s.id()
	location.CreatedAt = time.Now()
	s.locations[location.ID] = location
	return &location, nil
}

func (s *locationStore) SetPublished(ctx context.Context, id int64, published bool) (*model.Location, error) {
	l, ok := s.locations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	l.IsPublished = published
	s.locations[id] = l
	return &l, nil
}

type userStore struct{ *store }

func (s *userStore) Create(ctx context.Context, user model.User) error {
	if _, ok := s.users[user.ID]; !ok {
		s.users[user.ID] = user
	}
	return nil
}

func (s *userStore) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (s *userStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *userStore) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	for field, value := range updates {
		str, ok := value.(string)
		if !ok {
			return postgres.ErrInvalidFieldValue
		}
		switch field {
		case "username":
			u.Username = str
		case "email":
			u.Email = str
		case "first_name":
			u.FirstName = str
		case "last_name":
			u.LastName = str
		default:
			return postgres.ErrFieldsNotAllowedToUpdate
		}
	}
	s.users[id] = u
	return nil
}

type memoryRedis struct {
	values map[string]string
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: make(map[string]string)}
}

func (r *memoryRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(data)
	return nil
}

func (r *memoryRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := r.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (r *memoryRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := r.values[key]; ok {
			delete(r.values, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type published struct {
	queue string
	value interface{}
}

type recordingBroker struct {
	published []published
	err       error
}

func (b *recordingBroker) PublishJSON(ctx context.Context, queue string, v interface{}) error {
	b.published = append(b.published, published{queue: queue, value: v})
	return b.err
}

func (b *recordingBroker) Consume(queue string) (<-chan amqp.Delivery, error) {
	ch := make(chan amqp.Delivery)
	close(ch)
	return ch, nil
}

type fixture struct {
	store  *store
	redis  *memoryRedis
	broker *recordingBroker
	svc    *Service
}

func newFixture() *fixture {
	st := newStore()
	rdb := newMemoryRedis()
	broker := &recordingBroker{}
	return &fixture{
		store:  st,
		redis:  rdb,
		broker: broker,
		svc:    New(zap.NewNop(), st.repository(rdb), broker),
	}
}

func (f *fixture) user(username string) *model.User {
	u := model.User{ID: uuid.New(), Username: username, Email: username + "@example.com"}
	f.store.users[u.ID] = u
	return &u
}

func (f *fixture) category(slug string, published bool) model.Category {
	c := model.Category{ID: f.store.id(), Title: slug, Slug: slug, IsPublished: published}
	f.store.categories[c.ID] = c
	return c
}

type postOpt func(*model.Post)

func unpublished(p *model.Post) { p.IsPublished = false }

func inCategory(c model.Category) postOpt {
	return func(p *model.Post) {
		id := c.ID
		p.CategoryID = &id
	}
}

func publishedAt(t time.Time) postOpt {
	return func(p *model.Post) { p.PubDate = t }
}

func (f *fixture) post(author *model.User, opts ...postOpt) model.Post {
	p := model.Post{
		ID:          f.store.id(),
		AuthorID:    author.ID,
		Title:       "post",
		Text:        "text",
		PubDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsPublished: true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	f.store.posts[p.ID] = p
	return p
}

func (f *fixture) comment(post model.Post, author *model.User, text string) model.Comment {
	c := model.Comment{ID: f.store.id(), PostID: post.ID, AuthorID: author.ID, Text: text}
	f.store.comments[c.ID] = c
	return c
}

func postIDs(posts []*model.FullPost) []int64 {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.Post.ID)
	}
	return ids
}
