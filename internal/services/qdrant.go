package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// ExampleIndexService stores completed drafts as retrieval examples. Search
// results feed the generation prompts as few-shot context.
type ExampleIndexService interface {
	InitCollection() error
	UpsertExample(ctx context.Context, draftID string, kind string, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, kind string, limit int) ([]ExampleResult, error)
	DeleteExample(ctx context.Context, draftID string) error
}

type ExampleResult struct {
	ID    string
	Score float32
	Text  string
	Kind  string
}

type exampleIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewExampleIndexService(urlStr, apiKey, collectionName string) (ExampleIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &exampleIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements ExampleIndexService.
func (q *exampleIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertExample implements ExampleIndexService.
func (q *exampleIndexService) UpsertExample(ctx context.Context, draftID string, kind string, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"draft_id": draftID,
			"kind":     kind,
			"text":     text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements ExampleIndexService.
func (q *exampleIndexService) SearchSimilar(ctx context.Context, queryEmbedding []float32, kind string, limit int) ([]ExampleResult, error) {
	var filter *qdrant.Filter
	if kind != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("kind", kind),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []ExampleResult
	for _, point := range searchResult {
		payload := point.Payload

		result := ExampleResult{
			Score: point.Score,
		}

		if draftID, ok := payload["draft_id"]; ok {
			if val, ok := draftID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ID = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		if kindVal, ok := payload["kind"]; ok {
			if val, ok := kindVal.GetKind().(*qdrant.Value_StringValue); ok {
				result.Kind = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteExample implements ExampleIndexService.
func (q *exampleIndexService) DeleteExample(ctx context.Context, draftID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("draft_id", draftID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete example: %w", err)
	}

	return nil
}
