package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shop-app/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// ProductReindexer me-refresh data search (embedding) sebuah product
// setelah order dibuat atau dibatalkan. Best-effort: error hanya di-log,
// tidak pernah menggagalkan operasi utama.
type ProductReindexer interface {
	IndexProduct(ctx context.Context, productID uint) error
}

// GeminiReindexer menghitung embedding product lewat Gemini dan
// menyimpannya di kolom embedding.
type GeminiReindexer struct {
	db     *gorm.DB
	apiKey string
}

func NewGeminiReindexer(db *gorm.DB, apiKey string) *GeminiReindexer {
	return &GeminiReindexer{db: db, apiKey: apiKey}
}

func (s *GeminiReindexer) IndexProduct(ctx context.Context, productID uint) error {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d not found", productID)
		}
		return err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return err
	}
	defer client.Close()

	em := client.EmbeddingModel("text-embedding-004")
	res, err := em.EmbedContent(ctx, genai.Text(product.Name+" "+product.SKU+" "+product.Category))
	if err != nil {
		return err
	}

	vector, err := json.Marshal(res.Embedding.Values)
	if err != nil {
		return err
	}

	return s.db.Model(&product).Update("embedding", string(vector)).Error
}

// NoopReindexer dipakai kalau GEMINI_API_KEY tidak di-set.
type NoopReindexer struct{}

func (NoopReindexer) IndexProduct(ctx context.Context, productID uint) error {
	return nil
}

// NewReindexer memilih implementasi berdasarkan api key.
func NewReindexer(db *gorm.DB, apiKey string) ProductReindexer {
	if apiKey == "" {
		return NoopReindexer{}
	}
	return NewGeminiReindexer(db, apiKey)
}

// ReindexProductsAsync menjalankan reindex di background, fire-and-forget.
// Tidak boleh menahan transaksi inventory yang sudah commit.
func ReindexProductsAsync(reindexer ProductReindexer, productIDs []uint) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, id := range productIDs {
			if err := reindexer.IndexProduct(ctx, id); err != nil {
				logrus.WithField("product_id", id).WithError(err).Warn("product reindex failed")
			}
		}
	}()
}
