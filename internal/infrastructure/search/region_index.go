// Package search keeps an Elasticsearch copy of the regions table, fed by
// region change events.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/nz-walks-api/internal/domain/event"
)

const requestTimeout = 5 * time.Second

type RegionIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewRegionIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *RegionIndex {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RegionIndex{ES: es, Index: index, Logger: logger}
}

type regionDoc struct {
	event.RegionSnapshot
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusError is an Elasticsearch answer outside 2xx.
type StatusError struct {
	Event  event.RegionEventType
	ID     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("es %s %s: %d %s", e.Event, e.ID, e.Status, http.StatusText(e.Status))
}

// Temporary reports whether the same request may succeed later. Other 4xx
// answers (mapping conflicts, a missing index) will fail identically forever.
func (e *StatusError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// Apply mirrors a single event into the index. Documents are versioned
// externally by the event time, so an event delivered after a newer one for
// the same region is ignored instead of resurrecting or rewinding the document.
func (ix *RegionIndex) Apply(ctx context.Context, ev event.RegionEvent) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	id := ev.Region.ID.String()
	var version *int
	var versionType string
	if !ev.OccurredAt.IsZero() {
		v := int(ev.OccurredAt.UnixNano())
		version, versionType = &v, "external"
	}

	var req esapi.Request
	switch ev.Type {
	case event.RegionCreated, event.RegionUpdated:
		b, err := json.Marshal(regionDoc{RegionSnapshot: ev.Region, UpdatedAt: ev.OccurredAt})
		if err != nil {
			return err
		}
		req = esapi.IndexRequest{
			Index:       ix.Index,
			DocumentID:  id,
			Body:        bytes.NewReader(b),
			Refresh:     "false",
			Version:     version,
			VersionType: versionType,
		}
	case event.RegionDeleted:
		req = esapi.DeleteRequest{Index: ix.Index, DocumentID: id, Version: version, VersionType: versionType}
	default:
		return fmt.Errorf("unknown region event type %q", ev.Type)
	}

	res, err := req.Do(c, ix.ES)
	if err != nil {
		return fmt.Errorf("es %s %s: %w", ev.Type, id, err)
	}
	defer func() { _ = res.Body.Close() }()

	log := ix.Logger.WithFields(logrus.Fields{"region_id": id, "event": ev.Type})
	switch {
	case ev.Type == event.RegionDeleted && res.StatusCode == http.StatusNotFound:
		// never indexed
		return nil
	case res.StatusCode == http.StatusConflict && version != nil:
		log.Debug("stale region event skipped")
		return nil
	case res.IsError():
		return &StatusError{Event: ev.Type, ID: id, Status: res.StatusCode}
	}
	log.Debug("region index updated")
	return nil
}

// HandleMessage decodes one queued event and applies it. requeue reports
// whether a failed message is worth delivering again: transport failures,
// 5xx and 429 are; undecodable payloads, unknown types and other 4xx are not.
func (ix *RegionIndex) HandleMessage(ctx context.Context, body []byte) (requeue bool, err error) {
	var ev event.RegionEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return false, fmt.Errorf("decode region event: %w", err)
	}
	switch ev.Type {
	case event.RegionCreated, event.RegionUpdated, event.RegionDeleted:
	default:
		return false, fmt.Errorf("unknown region event type %q", ev.Type)
	}
	if err := ix.Apply(ctx, ev); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return se.Temporary(), err
		}
		return true, err
	}
	return false, nil
}
