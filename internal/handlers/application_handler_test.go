package handlers

import (
	"net/http"
	"testing"

	"github.com/mfadhilr/jobboard_be/internal/models"
)

func TestMyApplications(t *testing.T) {
	app, gdb := setupApp(t)
	client := createUser(t, gdb, "Client", "client@example.com", models.RoleClient)
	freelancer := createUser(t, gdb, "Freelancer", "fl@example.com", models.RoleFreelancer)

	_, created := doJSON(t, app, "POST", "/api/jobs", tokenFor(t, client), validJobBody())
	jobID := created["data"].(map[string]interface{})["id"].(string)

	doJSON(t, app, "POST", "/api/jobs/"+jobID+"/apply", tokenFor(t, freelancer), map[string]interface{}{
		"proposal":           longProposal,
		"bid_amount":         450,
		"estimated_duration": "1 week",
	})

	// role-gated: clients get 403
	resp, _ := doJSON(t, app, "GET", "/api/my-applications", tokenFor(t, client), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 for client, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, "GET", "/api/my-applications", tokenFor(t, freelancer), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	items := body["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 application, got %d", len(items))
	}
	entry := items[0].(map[string]interface{})
	if entry["job_id"] != jobID {
		t.Errorf("Expected job id %s, got %v", jobID, entry["job_id"])
	}
	if entry["job_title"] != "UX Designer Needed" {
		t.Errorf("Expected job title, got %v", entry["job_title"])
	}
	application := entry["application"].(map[string]interface{})
	if application["status"] != "pending" {
		t.Errorf("Expected pending, got %v", application["status"])
	}
}

func TestMyJobsApplications(t *testing.T) {
	app, gdb := setupApp(t)
	client := createUser(t, gdb, "Client", "client@example.com", models.RoleClient)
	otherClient := createUser(t, gdb, "Other", "other@example.com", models.RoleClient)
	freelancer := createUser(t, gdb, "Freelancer", "fl@example.com", models.RoleFreelancer)

	_, created := doJSON(t, app, "POST", "/api/jobs", tokenFor(t, client), validJobBody())
	jobID := created["data"].(map[string]interface{})["id"].(string)
	doJSON(t, app, "POST", "/api/jobs", tokenFor(t, otherClient), validJobBody())

	doJSON(t, app, "POST", "/api/jobs/"+jobID+"/apply", tokenFor(t, freelancer), map[string]interface{}{
		"proposal":           longProposal,
		"bid_amount":         450,
		"estimated_duration": "1 week",
	})

	resp, body := doJSON(t, app, "GET", "/api/my-jobs-applications", tokenFor(t, client), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	jobs := body["data"].([]interface{})
	if len(jobs) != 1 {
		t.Fatalf("Expected only the caller's job, got %d", len(jobs))
	}
	job := jobs[0].(map[string]interface{})
	apps := job["applications"].([]interface{})
	if len(apps) != 1 {
		t.Fatalf("Expected 1 application, got %d", len(apps))
	}
	applicant := apps[0].(map[string]interface{})["freelancer"].(map[string]interface{})
	if applicant["name"] != "Freelancer" {
		t.Errorf("Expected resolved applicant identity, got %v", applicant)
	}
	if _, leaked := applicant["password"]; leaked {
		t.Error("Password must never serialize")
	}
}

func TestWithdraw(t *testing.T) {
	app, gdb := setupApp(t)
	client := createUser(t, gdb, "Client", "client@example.com", models.RoleClient)
	freelancer := createUser(t, gdb, "Freelancer", "fl@example.com", models.RoleFreelancer)

	_, created := doJSON(t, app, "POST", "/api/jobs", tokenFor(t, client), validJobBody())
	jobID := created["data"].(map[string]interface{})["id"].(string)

	// nothing to withdraw yet
	resp, _ := doJSON(t, app, "DELETE", "/api/withdraw/"+jobID, tokenFor(t, freelancer), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 before applying, got %d", resp.StatusCode)
	}

	doJSON(t, app, "POST", "/api/jobs/"+jobID+"/apply", tokenFor(t, freelancer), map[string]interface{}{
		"proposal":           longProposal,
		"bid_amount":         450,
		"estimated_duration": "1 week",
	})

	resp, _ = doJSON(t, app, "DELETE", "/api/withdraw/"+jobID, tokenFor(t, freelancer), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var count int64
	gdb.Model(&models.Application{}).Where("job_id = ?", jobID).Count(&count)
	if count != 0 {
		t.Errorf("Expected application removed, found %d", count)
	}

	// withdrawing again reports not found, and a freelancer can re-apply
	resp, _ = doJSON(t, app, "DELETE", "/api/withdraw/"+jobID, tokenFor(t, freelancer), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 after withdrawal, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, "POST", "/api/jobs/"+jobID+"/apply", tokenFor(t, freelancer), map[string]interface{}{
		"proposal":           longProposal,
		"bid_amount":         400,
		"estimated_duration": "2-4 weeks",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected re-apply after withdraw to succeed, got %d", resp.StatusCode)
	}
}
