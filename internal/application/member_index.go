package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/promisor/internal/domain/entity"
)

// MemberDocument is the searchable projection of a member. Credentials are never indexed.
type MemberDocument struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MemberIndex keeps an Elasticsearch index of members. A nil *MemberIndex or
// one without a client is a no-op.
type MemberIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewMemberIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *MemberIndex {
	return &MemberIndex{ES: es, Index: index, Logger: logger}
}

func (x *MemberIndex) enabled() bool {
	return x != nil && x.ES != nil && x.Index != ""
}

func toDocument(m *entity.Member) MemberDocument {
	return MemberDocument{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      string(m.Role),
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// IndexMember upserts m. Failures are logged and returned; callers treat them as non-fatal.
func (x *MemberIndex) IndexMember(ctx context.Context, m *entity.Member) error {
	if !x.enabled() || m == nil {
		return nil
	}
	b, err := json.Marshal(toDocument(m))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: m.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		if x.Logger != nil {
			x.Logger.WithError(err).WithField("member_id", m.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if x.Logger != nil {
			x.Logger.WithField("status", res.Status()).WithField("member_id", m.ID).Warn("es index response error")
		}
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match query over email and name.
func (x *MemberIndex) Search(ctx context.Context, q string, size int) ([]MemberDocument, error) {
	if !x.enabled() || strings.TrimSpace(q) == "" {
		return []MemberDocument{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source MemberDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]MemberDocument, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
