package cms

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Strapi v4 wraps every entry and relation as {"data": ..., "attributes": ...}.
type collectionResponse struct {
	Data []struct {
		Attributes map[string]json.RawMessage `json:"attributes"`
	} `json:"data"`
}

type mediaRelation struct {
	Data json.RawMessage `json:"data"`
}

type mediaEntry struct {
	Attributes struct {
		URL             string `json:"url"`
		AlternativeText string `json:"alternativeText"`
		Caption         string `json:"caption"`
		Width           int    `json:"width"`
		Height          int    `json:"height"`
	} `json:"attributes"`
}

func (c *Client) parseGallery(body []byte) ([]Image, error) {
	var payload collectionResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	images := []Image{}
	if len(payload.Data) == 0 {
		return images, nil
	}

	raw, ok := payload.Data[0].Attributes[c.imageField]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return images, nil
	}
	var relation mediaRelation
	if err := json.Unmarshal(raw, &relation); err != nil {
		return nil, err
	}

	entries, err := decodeEntries(relation.Data)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Attributes.URL == "" {
			continue
		}
		alt := e.Attributes.AlternativeText
		if alt == "" {
			alt = e.Attributes.Caption
		}
		images = append(images, Image{
			URL:    c.resolve(e.Attributes.URL),
			Alt:    alt,
			Width:  e.Attributes.Width,
			Height: e.Attributes.Height,
		})
	}
	return images, nil
}

// decodeEntries accepts both single and multiple media fields.
func decodeEntries(raw json.RawMessage) ([]mediaEntry, error) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "" || trimmed == "null":
		return nil, nil
	case strings.HasPrefix(trimmed, "["):
		var entries []mediaEntry
		err := json.Unmarshal(raw, &entries)
		return entries, err
	default:
		var entry mediaEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, err
		}
		return []mediaEntry{entry}, nil
	}
}

// resolve turns upload paths such as /uploads/x.jpg into absolute URLs.
func (c *Client) resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
