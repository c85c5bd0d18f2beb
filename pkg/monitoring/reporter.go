// Package monitoring forwards error events to an external sink for
// observability. Reporting is purely observational: it never affects the
// outcome of the operation that produced the error.
package monitoring

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Reporter receives structured error events.
type Reporter interface {
	ReportError(ctx context.Context, op, msg string, fields map[string]any)
}

// ESReporter indexes error events into an Elasticsearch index.
type ESReporter struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewESReporter(es *elasticsearch.Client, index string, logger *logrus.Logger) *ESReporter {
	return &ESReporter{ES: es, Index: index, Logger: logger}
}

func (r *ESReporter) ReportError(ctx context.Context, op, msg string, fields map[string]any) {
	if r == nil || r.ES == nil || r.Index == "" {
		return
	}
	doc := map[string]any{
		"level":     "error",
		"operation": op,
		"message":   msg,
		"at":        time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		doc[k] = v
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: r.Index, DocumentID: uuid.NewString(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, r.ES)
	if err != nil {
		if r.Logger != nil {
			r.Logger.WithError(err).WithField("operation", op).Warn("error report failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && r.Logger != nil {
		r.Logger.WithField("status", res.Status()).WithField("operation", op).Warn("error report response error")
	}
}

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

var _ Reporter = (*ESReporter)(nil)
