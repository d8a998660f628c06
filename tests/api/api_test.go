//go:build api

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

const serviceURL = "http://localhost:8080"

// Credentials for the bootstrap admin the service creates on startup when
// ADMIN_EMAIL / ADMIN_PASSWORD are set. Override via env when they differ.
var (
	adminEmail    = envOr("API_TEST_ADMIN_EMAIL", "admin@railbook.local")
	adminPassword = envOr("API_TEST_ADMIN_PASSWORD", "admin-secret")
)

// TestAPI_FullFlow walks the whole journey against a running service:
// admin publishes a train, a traveller registers, searches, builds a
// roster, books, confirms and finally cancels.
func TestAPI_FullFlow(t *testing.T) {
	waitForService(t)

	runID := time.Now().UnixNano()
	trainNumber := fmt.Sprintf("%d", 10000+runID%90000)
	userEmail := fmt.Sprintf("traveller-%d@test.local", runID)

	var (
		adminToken string
		userToken  string
		trainID    float64
		passengers []float64
		bookingID  float64
	)

	t.Run("Step1_AdminLogin", func(t *testing.T) {
		resp := post(t, "/login", "", map[string]string{
			"email":    adminEmail,
			"password": adminPassword,
		})
		requireStatus(t, resp, 200)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		adminToken = body["token"].(string)
		if adminToken == "" {
			t.Fatal("admin login returned no token")
		}
	})

	t.Run("Step2_AdminCreatesTrain", func(t *testing.T) {
		resp := post(t, "/api/v1/admin/trains", adminToken, map[string]interface{}{
			"train_number":   trainNumber,
			"train_name":     "Rajdhani Express",
			"origin":         "Mumbai",
			"destination":    "Delhi",
			"date":           "2026-09-01",
			"departure_time": "17:00",
			"arrival_time":   "09:55",
			"classes": []map[string]interface{}{
				{"class": "SL", "quota": "GN", "seats_available": 3, "price": 800},
				{"class": "3A", "quota": "GN", "seats_available": 10, "price": 1500},
			},
		})
		requireStatus(t, resp, 201)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		trainID = body["id"].(float64)

		// Same number twice is a conflict
		resp = post(t, "/api/v1/admin/trains", adminToken, map[string]interface{}{
			"train_number": trainNumber,
			"train_name":   "Imposter Express",
			"origin":       "Pune", "destination": "Goa",
			"date": "2026-09-02",
		})
		requireStatus(t, resp, 409)
	})

	t.Run("Step3_TravellerRegisters", func(t *testing.T) {
		resp := post(t, "/register", "", map[string]string{
			"name":     "Asha Rao",
			"email":    userEmail,
			"password": "s3cret-pass",
		})
		requireStatus(t, resp, 201)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		userToken = body["token"].(string)
	})

	t.Run("Step4_SearchShowsTrain", func(t *testing.T) {
		resp := get(t, "/api/v1/trains/search?origin=mumbai&destination=delhi&date=2026-09-01", "")
		requireStatus(t, resp, 200)

		var results []map[string]interface{}
		decodeJSON(t, resp, &results)

		found := false
		for _, r := range results {
			if r["train_number"] == trainNumber {
				found = true
			}
		}
		if !found {
			t.Fatalf("train %s missing from search results", trainNumber)
		}
	})

	t.Run("Step5_BuildRoster", func(t *testing.T) {
		for _, p := range []map[string]interface{}{
			{"name": "Asha Rao", "age": 34, "gender": "Female"},
			{"name": "Vikram Rao", "age": 36, "gender": "Male"},
		} {
			resp := post(t, "/api/v1/passengers", userToken, p)
			requireStatus(t, resp, 201)

			var body map[string]interface{}
			decodeJSON(t, resp, &body)
			passengers = append(passengers, body["id"].(float64))
		}
	})

	t.Run("Step6_CreateBookingIsPending", func(t *testing.T) {
		resp := post(t, "/api/v1/bookings", userToken, map[string]interface{}{
			"train_id":      trainID,
			"class":         "SL",
			"quota":         "GN",
			"passenger_ids": passengers,
		})
		requireStatus(t, resp, 201)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		bookingID = body["id"].(float64)
		if body["status"] != "pending" {
			t.Fatalf("new booking should be pending, got %v", body["status"])
		}

		// Create holds nothing: search still shows 3 seats
		seats := seatsFor(t, trainNumber, "SL", "GN")
		if seats != 3 {
			t.Fatalf("expected 3 seats after create, got %v", seats)
		}
	})

	t.Run("Step7_ConfirmDecrementsSeats", func(t *testing.T) {
		resp := post(t, fmt.Sprintf("/api/v1/bookings/%.0f/confirm", bookingID), userToken, nil)
		requireStatus(t, resp, 200)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		if body["status"] != "confirmed" {
			t.Fatalf("expected confirmed, got %v", body["status"])
		}

		if seats := seatsFor(t, trainNumber, "SL", "GN"); seats != 1 {
			t.Fatalf("expected 1 seat after confirming 2 passengers, got %v", seats)
		}

		// Confirm is not repeatable
		resp = post(t, fmt.Sprintf("/api/v1/bookings/%.0f/confirm", bookingID), userToken, nil)
		requireStatus(t, resp, 409)
	})

	t.Run("Step8_CancelRestoresSeats", func(t *testing.T) {
		resp := post(t, fmt.Sprintf("/api/v1/bookings/%.0f/cancel", bookingID), userToken, nil)
		requireStatus(t, resp, 200)

		var body map[string]interface{}
		decodeJSON(t, resp, &body)
		if body["status"] != "cancelled" {
			t.Fatalf("expected cancelled, got %v", body["status"])
		}

		if seats := seatsFor(t, trainNumber, "SL", "GN"); seats != 3 {
			t.Fatalf("expected 3 seats restored after cancel, got %v", seats)
		}

		// Cancelled is terminal
		resp = post(t, fmt.Sprintf("/api/v1/bookings/%.0f/cancel", bookingID), userToken, nil)
		requireStatus(t, resp, 409)
	})

	t.Run("Step9_AdminSeesAllBookings", func(t *testing.T) {
		resp := get(t, "/api/v1/admin/bookings", adminToken)
		requireStatus(t, resp, 200)

		// A plain user is rejected
		resp = get(t, "/api/v1/admin/bookings", userToken)
		requireStatus(t, resp, 403)
	})
}

// Helper functions

func waitForService(t *testing.T) {
	for i := 0; i < 30; i++ {
		resp, err := http.Get(serviceURL + "/health")
		if err == nil && resp.StatusCode == 200 {
			resp.Body.Close()
			return
		}
		time.Sleep(1 * time.Second)
	}
	t.Fatal("service did not become ready in time")
}

func seatsFor(t *testing.T, trainNumber, class, quota string) float64 {
	t.Helper()
	resp := get(t, "/api/v1/trains/search?origin=mumbai&destination=delhi&date=2026-09-01", "")
	requireStatus(t, resp, 200)

	var results []map[string]interface{}
	decodeJSON(t, resp, &results)
	for _, r := range results {
		if r["train_number"] != trainNumber {
			continue
		}
		for _, c := range r["classes"].([]interface{}) {
			fc := c.(map[string]interface{})
			if fc["class"] == class && fc["quota"] == quota {
				return fc["seats_available"].(float64)
			}
		}
	}
	t.Fatalf("fare class %s/%s not found for train %s", class, quota, trainNumber)
	return 0
}

func get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, serviceURL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func post(t *testing.T, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, serviceURL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func requireStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected HTTP %d, got %d", want, resp.StatusCode)
	}
}

func decodeJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestMain(m *testing.M) {
	fmt.Println("Starting API tests...")
	fmt.Println("Make sure the service and its database are running: make docker-up")
	fmt.Println("")

	os.Exit(m.Run())
}
