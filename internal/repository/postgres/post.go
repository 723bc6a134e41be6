package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fullPostSelect = `SELECT
	p.id, p.author_id, p.category_id, p.location_id, p.title, p.text, p.image, p.pub_date, p.is_published, p.created_at,
	u.username, u.first_name, u.last_name,
	c.title, c.slug, c.is_published,
	l.name, l.is_published,
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON p.author_id = u.id
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN locations l ON p.location_id = l.id`

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO posts(author_id, category_id, location_id, title, text, image, pub_date, is_published, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		post.AuthorID,
		post.CategoryID,
		post.LocationID,
		post.Title,
		post.Text,
		post.Image,
		post.PubDate,
		post.IsPublished,
		post.CreatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	row := r.db.QueryRow(ctx, fullPostSelect+" WHERE p.id = $1", id)

	post, err := scanFullPost(row)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (r *postRepo) Find(ctx context.Context, filter model.PostFilter, limit int, offset int) ([]*model.FullPost, error) {
	where, args := postFilterWhere(filter, nil)
	args = append(args, limit, offset)

	query := fullPostSelect + where +
		" ORDER BY p.pub_date DESC, p.id ASC" +
		" LIMIT $" + strconv.Itoa(len(args)-1) +
		" OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*model.FullPost, 0, limit)
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	where, args := postFilterWhere(filter, nil)

	var count int
	if err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM posts p LEFT JOIN categories c ON p.category_id = c.id"+where,
		args...,
	).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE posts
		SET category_id = $1, location_id = $2, title = $3, text = $4, image = $5, pub_date = $6, is_published = $7
		WHERE id = $8`,
		post.CategoryID,
		post.LocationID,
		post.Title,
		post.Text,
		post.Image,
		post.PubDate,
		post.IsPublished,
		post.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func scanFullPost(row pgx.Row) (*model.FullPost, error) {
	var (
		post              model.FullPost
		authorID          uuid.UUID
		categoryTitle     *string
		categorySlug      *string
		categoryPublished *bool
		locationName      *string
		locationPublished *bool
	)
	if err := row.Scan(
		&post.Post.ID,
		&authorID,
		&post.Post.CategoryID,
		&post.Post.LocationID,
		&post.Post.Title,
		&post.Post.Text,
		&post.Post.Image,
		&post.Post.PubDate,
		&post.Post.IsPublished,
		&post.Post.CreatedAt,
		&post.Author.Username,
		&post.Author.FirstName,
		&post.Author.LastName,
		&categoryTitle,
		&categorySlug,
		&categoryPublished,
		&locationName,
		&locationPublished,
		&post.CommentCount,
	); err != nil {
		return nil, err
	}

	post.Post.AuthorID = authorID
	post.Author.ID = authorID

	if post.Post.CategoryID != nil && categorySlug != nil {
		post.Category = &model.PostCategory{
			ID:          *post.Post.CategoryID,
			Title:       *categoryTitle,
			Slug:        *categorySlug,
			IsPublished: *categoryPublished,
		}
	}

	if post.Post.LocationID != nil && locationName != nil {
		post.Location = &model.PostLocation{
			ID:          *post.Post.LocationID,
			Name:        *locationName,
			IsPublished: *locationPublished,
		}
	}

	return &post, nil
}
