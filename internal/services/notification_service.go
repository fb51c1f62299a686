package services

import (
	"faceswapadmin/internal/domain"
	"faceswapadmin/internal/remote"
	"faceswapadmin/internal/validate"
)

type MessagePage struct {
	Items []domain.PromotionalMessage
	Page  int
	// TotalPages is the number of items the backend returned for Page; the
	// backend exposes no total count.
	TotalPages int
}

// Pages lists 1..TotalPages for the pager.
func (p MessagePage) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

type NotificationService struct {
	API             *remote.Client
	NormalizeTopics bool
}

func NewNotificationService(api *remote.Client, normalizeTopics bool) *NotificationService {
	return &NotificationService{API: api, NormalizeTopics: normalizeTopics}
}

func (s *NotificationService) Page(page int) (MessagePage, error) {
	if page < 1 {
		page = 1
	}
	items, err := s.API.ListPromotionalMessages(page)
	if err != nil {
		return MessagePage{Page: page}, err
	}
	return MessagePage{Items: items, Page: page, TotalPages: len(items)}, nil
}

// Send validates and dispatches n. The returned Notification carries the
// normalized values that were sent.
func (s *NotificationService) Send(n domain.Notification) (domain.PromotionalMessage, domain.Notification, error) {
	title, ok := validate.Text(n.Title)
	if !ok {
		return domain.PromotionalMessage{}, n, domain.Invalid("message_title", "title is required")
	}
	body, ok := validate.Text(n.Body)
	if !ok {
		return domain.PromotionalMessage{}, n, domain.Invalid("message_body", "body is required")
	}
	topic, ok := validate.Topic(n.Topic, s.NormalizeTopics)
	if !ok {
		return domain.PromotionalMessage{}, n, domain.Invalid("topic_name", topicReason(s.NormalizeTopics))
	}
	n.Title, n.Body, n.Topic = title, body, topic
	msg, err := s.API.SendNotification(n)
	return msg, n, err
}

func topicReason(normalize bool) string {
	if normalize {
		return "topic must contain letters or digits"
	}
	return "topic is required"
}

func (s *NotificationService) Delete(id int64) error {
	return s.API.DeletePromotionalMessage(id)
}
