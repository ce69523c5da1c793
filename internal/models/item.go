// Package models defines data types for the good-neighbor similarity graph.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Item is one archival record. Items are created by the bulk import and
// never mutated afterwards.
type Item struct {
	ID           string   `json:"id"`
	Title        FlexList `json:"title"`
	Creators     FlexList `json:"creators,omitempty"`
	Description  string   `json:"description,omitempty"`
	Year         *int     `json:"year,omitempty"`
	DateBegin    string   `json:"date_begin,omitempty"`
	DateEnd      string   `json:"date_end,omitempty"`
	Languages    FlexList `json:"language,omitempty"`
	Type         string   `json:"type,omitempty"`
	Concepts     FlexList `json:"concepts,omitempty"`
	PlaceLabel   string   `json:"place_label,omitempty"`
	PlaceLat     *float64 `json:"place_lat,omitempty"`
	PlaceLon     *float64 `json:"place_lon,omitempty"`
	Country      string   `json:"country,omitempty"`
	Collection   string   `json:"collection,omitempty"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Link         string   `json:"link,omitempty"`
	Rights       string   `json:"rights,omitempty"`
	IIIFManifest string   `json:"iiif_manifest,omitempty"`
}

// DisplayTitle returns the first non-empty title, or the item ID when
// no title exists.
func (it *Item) DisplayTitle() string {
	for _, t := range it.Title {
		if t != "" {
			return t
		}
	}

	return it.ID
}

// ScoredNeighbor pairs a neighbor item with its edge to a focus item,
// carrying both the precomputed sub-scores and the live recomposed score.
type ScoredNeighbor struct {
	Item  Item         `json:"item"`
	Edge  NeighborEdge `json:"edge"`
	Score float64      `json:"score"`
}

// FlexList is a string list that tolerates the loose shapes the harvest
// pipeline emits: a plain string, a list of strings, or a language-keyed
// object of either.
type FlexList []string

// UnmarshalJSON accepts string, []string, or map[string]any input.
// Any other shape decodes to an empty list rather than an error.
func (f *FlexList) UnmarshalJSON(data []byte) error {
	*f = nil

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "" {
			*f = FlexList{s}
		}

		return nil
	}

	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		for _, v := range list {
			if sv, ok := v.(string); ok && sv != "" {
				*f = append(*f, sv)
			}
		}

		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil {
		// Prefer English labels, matching the harvester's language order.
		for _, lang := range []string{"en", "fr", "de"} {
			if v, ok := m[lang]; ok {
				appendFlexValue(f, v)
			}
		}

		if len(*f) == 0 {
			for _, v := range m {
				appendFlexValue(f, v)
			}
		}
	}

	return nil
}

func appendFlexValue(f *FlexList, v any) {
	switch tv := v.(type) {
	case string:
		if tv != "" {
			*f = append(*f, tv)
		}
	case []any:
		for _, e := range tv {
			if s, ok := e.(string); ok && s != "" {
				*f = append(*f, s)
			}
		}
	}
}

// Join returns the list elements joined by a single space.
func (f FlexList) Join() string {
	return strings.Join(f, " ")
}

// itemAlias avoids UnmarshalJSON recursion on Item.
type itemAlias Item

// UnmarshalJSON decodes an item while tolerating a year field that is a
// number, a numeric string, or a sentinel like "Unknown Year".
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		itemAlias
		Year json.RawMessage `json:"year"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*it = Item(raw.itemAlias)
	it.Year = parseFlexYear(raw.Year)

	return nil
}

func parseFlexYear(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		n = int(f)

		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if y, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &y
		}
	}

	return nil
}
