// Package http serves the tracker's JSON API.
//
// This file implements utilities for parsing and validating HTTP request
// data. Create endpoints accept either a JSON body or an HTML form with
// the same field names.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ritmo/internal/core"
)

var errBadBody = errors.New("malformed request body")

type activityRequest struct {
	Date      string   `json:"date"`
	EntryTime string   `json:"entryTime"`
	Category  string   `json:"category"`
	Name      string   `json:"name"`
	Duration  *float64 `json:"duration"`
	Score     *int     `json:"score"`
	Notes     string   `json:"notes"`
}

type goalRequest struct {
	Name     string   `json:"name"`
	Target   *float64 `json:"target"`
	Unit     string   `json:"unit"`
	Category string   `json:"category"`
}

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// parseActivityRequest builds an unvalidated activity from a JSON body
// or form fields. The entry date defaults to today when omitted.
func parseActivityRequest(r *http.Request) (core.Activity, error) {
	var req activityRequest
	if isJSONRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return core.Activity{}, errBadBody
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return core.Activity{}, errBadBody
		}
		req.Date = r.Form.Get("date")
		req.EntryTime = r.Form.Get("time")
		req.Category = r.Form.Get("category")
		req.Name = r.Form.Get("name")
		req.Notes = r.Form.Get("notes")
		if v := strings.TrimSpace(r.Form.Get("duration")); v != "" {
			d, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return core.Activity{}, errors.New("invalid duration")
			}
			req.Duration = &d
		}
		if v := strings.TrimSpace(r.Form.Get("score")); v != "" {
			sc, err := strconv.Atoi(v)
			if err != nil {
				return core.Activity{}, errors.New("invalid score")
			}
			req.Score = &sc
		}
	}

	entryTime := strings.TrimSpace(req.EntryTime)
	timestamp := time.Now()
	if v := strings.TrimSpace(req.Date); v != "" {
		day, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return core.Activity{}, errors.New("invalid date, expected YYYY-MM-DD")
		}
		timestamp = day
	}
	// The timestamp is the combined date and wall-clock time of the
	// event. A malformed time is left to Validate to reject.
	if clock, err := time.Parse("15:04", entryTime); err == nil {
		timestamp = time.Date(timestamp.Year(), timestamp.Month(), timestamp.Day(),
			clock.Hour(), clock.Minute(), 0, 0, time.Local)
	}

	a := core.Activity{
		Timestamp: timestamp,
		EntryTime: entryTime,
		Category:  sanitizeInput(req.Category),
		Name:      sanitizeInput(req.Name),
		Notes:     sanitizeInput(req.Notes),
		Score:     req.Score,
	}
	if req.Duration != nil {
		a.Duration = *req.Duration
	}
	return a, nil
}

// parseGoalRequest builds an unvalidated goal from a JSON body or form
// fields.
func parseGoalRequest(r *http.Request) (core.Goal, error) {
	var req goalRequest
	if isJSONRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return core.Goal{}, errBadBody
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return core.Goal{}, errBadBody
		}
		req.Name = r.Form.Get("name")
		req.Unit = r.Form.Get("unit")
		req.Category = r.Form.Get("category")
		if v := strings.TrimSpace(r.Form.Get("target")); v != "" {
			t, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return core.Goal{}, errors.New("invalid target")
			}
			req.Target = &t
		}
	}

	g := core.Goal{
		Name:     sanitizeInput(req.Name),
		Unit:     sanitizeInput(req.Unit),
		Category: sanitizeInput(req.Category),
	}
	if req.Target != nil {
		g.Target = *req.Target
	}
	return g, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
