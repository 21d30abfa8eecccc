package snapcast

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DatabaseFields lists the episode attributes the host accepts in update
// requests, in the order they are displayed.
var DatabaseFields = []string{
	"title", "subtitle", "description", "media_url", "media_size",
	"media_type", "media_duration", "pub_date", "link", "image",
	"episode_type", "season", "episode", "transcript", "transcript_type",
}

// IsDatabaseField reports whether name is an updatable episode field.
func IsDatabaseField(name string) bool {
	for _, field := range DatabaseFields {
		if field == name {
			return true
		}
	}
	return false
}

// Episode is one entry of a podcast feed as served by the host.
type Episode struct {
	ID             int64
	Title          string
	Subtitle       string
	Description    string
	MediaURL       string
	MediaSize      int64
	MediaType      string
	MediaDuration  time.Duration
	PubDate        time.Time
	Link           string
	Image          string
	EpisodeType    string
	Season         int
	Episode        int
	Transcript     string
	TranscriptType string
	UUID           string
	PodcastUUID    string
}

// episodeWire mirrors the host's JSON shape: duration as integer seconds,
// pub_date as an ISO timestamp.
type episodeWire struct {
	ID             int64           `json:"id"`
	Title          string          `json:"title"`
	Subtitle       string          `json:"subtitle"`
	Description    string          `json:"description"`
	MediaURL       string          `json:"media_url"`
	MediaSize      int64           `json:"media_size"`
	MediaType      string          `json:"media_type"`
	MediaDuration  int64           `json:"media_duration"`
	PubDate        string          `json:"pub_date"`
	Link           string          `json:"link"`
	Image          string          `json:"image"`
	EpisodeType    string          `json:"episode_type"`
	Season         int             `json:"season"`
	Episode        int             `json:"episode"`
	Transcript     string          `json:"transcript"`
	TranscriptType string          `json:"transcript_type"`
	UUID           string          `json:"uuid"`
	PodcastUUID    json.RawMessage `json:"podcast_uuid"`
}

// UnmarshalJSON decodes the wire representation into native types.
func (e *Episode) UnmarshalJSON(data []byte) error {
	var wire episodeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	pubDate, err := parsePubDate(wire.PubDate)
	if err != nil {
		return fmt.Errorf("episode %d: parse pub_date %q: %w", wire.ID, wire.PubDate, err)
	}

	*e = Episode{
		ID:             wire.ID,
		Title:          wire.Title,
		Subtitle:       wire.Subtitle,
		Description:    wire.Description,
		MediaURL:       wire.MediaURL,
		MediaSize:      wire.MediaSize,
		MediaType:      wire.MediaType,
		MediaDuration:  time.Duration(wire.MediaDuration) * time.Second,
		PubDate:        pubDate,
		Link:           wire.Link,
		Image:          wire.Image,
		EpisodeType:    wire.EpisodeType,
		Season:         wire.Season,
		Episode:        wire.Episode,
		Transcript:     wire.Transcript,
		TranscriptType: wire.TranscriptType,
		UUID:           wire.UUID,
		PodcastUUID:    rawToString(wire.PodcastUUID),
	}
	return nil
}

// MarshalJSON encodes the episode back into the wire representation so
// cached and --json output round-trips with the host format.
func (e Episode) MarshalJSON() ([]byte, error) {
	wire := episodeWire{
		ID:             e.ID,
		Title:          e.Title,
		Subtitle:       e.Subtitle,
		Description:    e.Description,
		MediaURL:       e.MediaURL,
		MediaSize:      e.MediaSize,
		MediaType:      e.MediaType,
		MediaDuration:  int64(e.MediaDuration / time.Second),
		PubDate:        e.PubDate.Format(time.RFC3339),
		Link:           e.Link,
		Image:          e.Image,
		EpisodeType:    e.EpisodeType,
		Season:         e.Season,
		Episode:        e.Episode,
		Transcript:     e.Transcript,
		TranscriptType: e.TranscriptType,
		UUID:           e.UUID,
	}
	if e.PodcastUUID != "" {
		encoded, err := json.Marshal(e.PodcastUUID)
		if err != nil {
			return nil, err
		}
		wire.PodcastUUID = encoded
	}
	return json.Marshal(wire)
}

// FieldValue returns the display form of one database field.
func (e *Episode) FieldValue(field string) string {
	switch field {
	case "title":
		return e.Title
	case "subtitle":
		return e.Subtitle
	case "description":
		return e.Description
	case "media_url":
		return e.MediaURL
	case "media_size":
		return fmt.Sprintf("%d", e.MediaSize)
	case "media_type":
		return e.MediaType
	case "media_duration":
		return FormatClockDuration(e.MediaDuration)
	case "pub_date":
		return e.PubDate.Format(time.RFC3339)
	case "link":
		return e.Link
	case "image":
		return e.Image
	case "episode_type":
		return e.EpisodeType
	case "season":
		return fmt.Sprintf("%d", e.Season)
	case "episode":
		return fmt.Sprintf("%d", e.Episode)
	case "transcript":
		return e.Transcript
	case "transcript_type":
		return e.TranscriptType
	default:
		return ""
	}
}

// pubDateLayouts covers the timestamp shapes the host emits. The server
// produces Python isoformat values, with or without a zone offset.
var pubDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parsePubDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range pubDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
