package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"faceswapadmin/internal/domain"
)

func TestSendNotificationMissingFieldKeepsInput(t *testing.T) {
	cs := loggedIn(t)
	resp := cs.postMultipart(t, "/notification", map[string]string{
		"page":          "1",
		"message_title": "",
		"message_body":  "Fresh faces every week",
		"topic_name":    "all",
	}, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)
	if !strings.Contains(body, "Fresh faces every week") || !strings.Contains(body, `value="all"`) {
		t.Fatalf("typed values not kept; body=%s", body)
	}
	if !strings.Contains(body, "title is required") {
		t.Fatalf("validation message missing; body=%s", body)
	}
	if n := len(cs.be.CallsTo("POST", "/send_notification_to_topic")); n != 0 {
		t.Fatalf("invalid send reached the backend %d times", n)
	}
}

func TestSendNotificationPostsOnceAndClearsForm(t *testing.T) {
	cs := loggedIn(t)
	resp := cs.postMultipart(t, "/notification", map[string]string{
		"page":          "1",
		"message_title": "Weekend drop",
		"message_body":  "New templates are live",
		"topic_name":    "Summer Sale",
	}, &upload{field: "image", name: "promo.png", data: pngBytes})
	expectRedirect(t, resp, "/notification?page=1")

	sends := cs.be.CallsTo("POST", "/send_notification_to_topic")
	if len(sends) != 1 {
		t.Fatalf("want exactly one send, got %d", len(sends))
	}
	got := sends[0]
	if got.Form["message_title"] != "Weekend drop" || got.Form["topic_name"] != "summer-sale" {
		t.Fatalf("unexpected form %+v", got.Form)
	}
	if !bytes.Equal(got.Files["image"], pngBytes) {
		t.Fatal("image not attached")
	}

	_, body := cs.get(t, "/notification?page=1")
	if !strings.Contains(body, `Notification sent to topic &#34;summer-sale&#34;.`) {
		t.Fatalf("success flash missing; body=%s", body)
	}
	if !strings.Contains(body, "<td>Weekend drop</td>") {
		t.Fatalf("sent message not listed; body=%s", body)
	}
	if strings.Contains(body, `value="Weekend drop"`) {
		t.Fatal("form not cleared after success")
	}
}

func TestSendNotificationBackendFailureKeepsInput(t *testing.T) {
	cs := loggedIn(t)
	cs.be.Respond("POST", "/send_notification_to_topic", http.StatusServiceUnavailable, `{"error":"fcm down"}`)
	resp := cs.postMultipart(t, "/notification", map[string]string{
		"message_title": "Hello",
		"message_body":  "World",
		"topic_name":    "all",
	}, nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)
	if !strings.Contains(body, `value="Hello"`) || !strings.Contains(body, "status 503") {
		t.Fatalf("body=%s", body)
	}
	if strings.Contains(body, "fcm down") {
		t.Fatal("backend body leaked")
	}
}

func TestNotificationPagerShowsItemCount(t *testing.T) {
	cs := loggedIn(t)
	cs.be.PageSize = 3
	for i := int64(1); i <= 4; i++ {
		cs.be.SeedMessages(domain.PromotionalMessage{ID: i, Title: "T" + itoa(i), Body: "b"})
	}

	_, body := cs.get(t, "/notification?page=1")
	if !strings.Contains(body, `<a href="/notification?page=3">3</a>`) || strings.Contains(body, "page=4") {
		t.Fatalf("pager should offer one link per returned item; body=%s", body)
	}
	_, body = cs.get(t, "/notification?page=2")
	if !strings.Contains(body, "<td>T4</td>") || strings.Contains(body, "page=2\">2</a>") {
		t.Fatalf("page 2 wrong; body=%s", body)
	}
}

func TestDeleteMessageRedirectsToPage(t *testing.T) {
	cs := loggedIn(t)
	cs.be.SeedMessages(domain.PromotionalMessage{ID: 5, Title: "Gone soon", Body: "b"})
	resp := cs.post(t, "/notification/5/delete", map[string][]string{"page": {"2"}})
	expectRedirect(t, resp, "/notification?page=2")
	if n := len(cs.be.CallsTo("DELETE", "/promotional_messages/5")); n != 1 {
		t.Fatalf("want one delete call, got %d", n)
	}
	if _, body := cs.get(t, "/notification?page=1"); strings.Contains(body, "Gone soon") {
		t.Fatal("deleted message still listed")
	}
}
