// Command smoke seeds a demo schedule through the HTTP API and verifies
// that conflict scanning and the document round trip behave. It is meant
// to run against a freshly started server with ENABLE_AUTH on.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type step struct {
	Name     string
	Method   string
	Path     string
	Body     any
	Expect   int
	Capture  func(data json.RawMessage) error
	Duration time.Duration
	Err      error
}

type client struct {
	base  string
	token string
	http  *http.Client
}

func main() {
	var (
		base     string
		email    string
		password string
		timeout  time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.StringVar(&email, "email", "admin@example.com", "Administrator email")
	flag.StringVar(&password, "password", "", "Administrator password")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	c := &client{base: strings.TrimRight(base, "/"), http: &http.Client{Timeout: timeout}}

	if err := c.login(email, password); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	var courseID, professorID, roomID, itemID int
	steps := []*step{
		{
			Name: "create course", Method: http.MethodPost, Path: "/courses", Expect: http.StatusCreated,
			Body:    map[string]any{"code": "MATH", "number": "220", "title": "Linear Algebra", "workload": 3},
			Capture: captureID(&courseID),
		},
		{
			Name: "create professor", Method: http.MethodPost, Path: "/faculty", Expect: http.StatusCreated,
			Body:    map[string]any{"lastName": "Smoke", "shortDes": "Smoke"},
			Capture: captureID(&professorID),
		},
		{
			Name: "create room", Method: http.MethodPost, Path: "/rooms", Expect: http.StatusCreated,
			Body:    map[string]any{"building": "SMOKE", "number": "101", "capacity": 30},
			Capture: captureID(&roomID),
		},
	}
	runSteps(c, steps)

	steps = append(steps, runSteps(c, []*step{
		{
			Name: "create section", Method: http.MethodPost, Path: "/schedule", Expect: http.StatusCreated,
			Body:    map[string]any{"courseId": courseID, "professorId": professorID},
			Capture: captureID(&itemID),
		},
	})...)

	steps = append(steps, runSteps(c, []*step{
		{
			Name: "place section", Method: http.MethodPost, Path: fmt.Sprintf("/schedule/%d/placements", itemID), Expect: http.StatusOK,
			Body: map[string]any{
				"roomId": roomID,
				"slot":   map[string]any{"days": "MWF", "startHour": 9, "startMinute": 0, "endHour": 9, "endMinute": 50},
			},
		},
		{Name: "scan conflicts", Method: http.MethodGet, Path: "/conflicts/scan", Expect: http.StatusOK},
		{Name: "export document", Method: http.MethodGet, Path: "/document", Expect: http.StatusOK},
		{Name: "delete section", Method: http.MethodDelete, Path: fmt.Sprintf("/schedule/%d", itemID), Expect: http.StatusNoContent},
		{Name: "delete course", Method: http.MethodDelete, Path: fmt.Sprintf("/courses/%d", courseID), Expect: http.StatusNoContent},
		{Name: "delete professor", Method: http.MethodDelete, Path: fmt.Sprintf("/faculty/%d", professorID), Expect: http.StatusNoContent},
		{Name: "delete room", Method: http.MethodDelete, Path: fmt.Sprintf("/rooms/%d", roomID), Expect: http.StatusNoContent},
	})...)

	failed := printReport(steps)
	if failed > 0 {
		os.Exit(1)
	}
}

func runSteps(c *client, steps []*step) []*step {
	for _, s := range steps {
		start := time.Now()
		s.Err = c.do(s)
		s.Duration = time.Since(start)
	}
	return steps
}

func captureID(dst *int) func(json.RawMessage) error {
	return func(data json.RawMessage) error {
		var payload struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		if payload.ID == 0 {
			return fmt.Errorf("response carried no id")
		}
		*dst = payload.ID
		return nil
	}
}

func (c *client) login(email, password string) error {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := c.http.Post(c.base+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var envelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if envelope.Data.AccessToken == "" {
		return fmt.Errorf("login response carried no token")
	}
	c.token = envelope.Data.AccessToken
	return nil
}

func (c *client) do(s *step) error {
	var reader io.Reader
	if s.Body != nil {
		raw, err := json.Marshal(s.Body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(s.Method, c.base+s.Path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if s.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != s.Expect {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("expected status %d, got %d: %s", s.Expect, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if s.Capture == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return s.Capture(envelope.Data)
}

func printReport(steps []*step) int {
	fmt.Println("Smoke Report")
	fmt.Println("============")
	failed := 0
	for _, s := range steps {
		status := "OK"
		if s.Err != nil {
			status = "FAIL"
			failed++
		}
		fmt.Printf("[%s] %s %s %s (%s)\n", status, s.Name, s.Method, s.Path, s.Duration)
		if s.Err != nil {
			fmt.Printf("  %v\n", s.Err)
		}
	}
	fmt.Printf("Failed steps: %d\n", failed)
	return failed
}
