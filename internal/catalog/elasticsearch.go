package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"career-workers/internal/common/logger"
	"career-workers/internal/models"
)

// DefaultSearchSize is the page size of a catalog search. Larger catalogs
// are read in several pages.
const DefaultSearchSize = 1000

// ElasticsearchRepository reads careers from an index whose documents use the
// Career JSON shape. Missing or malformed profile objects become nil.
type ElasticsearchRepository struct {
	client *elasticsearch.Client
	index  string
	size   int
	logger logger.Logger
}

func NewElasticsearchRepository(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchRepository {
	return &ElasticsearchRepository{
		client: client,
		index:  index,
		size:   DefaultSearchSize,
		logger: log.WithFields(map[string]interface{}{"catalog": "elasticsearch", "index": index}),
	}
}

// careerDocument holds the profiles raw so one bad document cannot fail the page.
type careerDocument struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Category        string             `json:"category"`
	SalaryRange     models.SalaryRange `json:"salaryRange"`
	InterestProfile json.RawMessage    `json:"interestProfile"`
	ValueProfile    json.RawMessage    `json:"valueProfile"`
	WorkEnvironment json.RawMessage    `json:"workEnvironment"`
}

type searchHit struct {
	ID     string         `json:"_id"`
	Source careerDocument `json:"_source"`
	Sort   []interface{}  `json:"sort"`
}

type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

func (r *ElasticsearchRepository) buildQuery(f Filter, after []interface{}) map[string]interface{} {
	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if f.Category != "" {
		query = map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"category": f.Category}},
				},
			},
		}
	}
	body := map[string]interface{}{
		"query": query,
		"size":  r.size,
		"sort":  []interface{}{map[string]interface{}{"id": "asc"}},
	}
	if len(after) > 0 {
		body["search_after"] = after
	}
	return body
}

// ListCareers pages through the index with search_after on the id sort until
// a short page comes back.
func (r *ElasticsearchRepository) ListCareers(ctx context.Context, f Filter) ([]models.Career, error) {
	careers := make([]models.Career, 0)
	var after []interface{}
	pages := 0

	for {
		hits, err := r.search(ctx, f, after)
		if err != nil {
			return nil, err
		}
		pages++

		for _, hit := range hits {
			careers = append(careers, r.toCareer(hit))
		}
		if len(hits) < r.size {
			break
		}

		last := hits[len(hits)-1].Sort
		if len(last) == 0 {
			return nil, fmt.Errorf("elasticsearch: %w: page %d has no sort values", ErrQueryFailed, pages)
		}
		after = last
	}

	r.logger.Debug("careers loaded", map[string]interface{}{
		"count":    len(careers),
		"pages":    pages,
		"category": f.Category,
	})
	return careers, nil
}

func (r *ElasticsearchRepository) search(ctx context.Context, f Filter, after []interface{}) ([]searchHit, error) {
	body, err := json.Marshal(r.buildQuery(f, after))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: encode query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{r.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %w: %s", ErrQueryFailed, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("elasticsearch: %w: decode response: %v", ErrQueryFailed, err)
	}
	return parsed.Hits.Hits, nil
}

func (r *ElasticsearchRepository) toCareer(hit searchHit) models.Career {
	doc := hit.Source
	id := doc.ID
	if id == "" {
		id = hit.ID
	}
	return models.Career{
		ID:              id,
		Title:           doc.Title,
		Category:        doc.Category,
		SalaryRange:     doc.SalaryRange,
		InterestProfile: decodeColumn[models.RIASECProfile](r.logger, id, "interestProfile", doc.InterestProfile),
		ValueProfile:    decodeColumn[models.ValueProfile](r.logger, id, "valueProfile", doc.ValueProfile),
		WorkEnvironment: decodeColumn[models.WorkEnvironment](r.logger, id, "workEnvironment", doc.WorkEnvironment),
	}
}
