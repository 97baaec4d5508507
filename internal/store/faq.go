package store

import (
	"context"
	"database/sql"
	"fmt"

	"chriscakes/internal/models"
)

// FAQs returns every FAQ by ascending sort order.
func (s *Store) FAQs(ctx context.Context) ([]models.FAQ, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, category, sort_order
		FROM faqs
		ORDER BY sort_order ASC, question ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()

	faqs := []models.FAQ{}
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.Order); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// FeaturedTestimonials returns featured testimonials by ascending sort order.
func (s *Store) FeaturedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, quote, author, author_title, rating, featured, sort_order
		FROM testimonials
		WHERE featured
		ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []models.Testimonial{}
	for rows.Next() {
		var (
			t      models.Testimonial
			rating sql.NullInt32
		)
		if err := rows.Scan(&t.ID, &t.Quote, &t.Author, &t.AuthorTitle, &rating, &t.Featured, &t.Order); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		if rating.Valid {
			t.Rating = int(rating.Int32)
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}
