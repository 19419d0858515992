package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/roshanahmedpuae-max/Serviceportals-sub001/config"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
)

// RatingService issues signed feedback tokens for completed work orders and
// records the scores submitted against them. Ratings are a disjoint entity:
// they share only the tenant identifier convention with the rest of the
// system and never feed document generation.
type RatingService struct {
	secret []byte
	expiry time.Duration

	mu      sync.RWMutex
	ratings map[string]*model.Rating // keyed by token
}

func NewRatingService(cfg *config.RatingConfig) *RatingService {
	return &RatingService{
		secret:  []byte(cfg.Secret),
		expiry:  time.Duration(cfg.TokenExpireHours) * time.Hour,
		ratings: make(map[string]*model.Rating),
	}
}

// IssueToken creates a signed single-use rating token for one work order.
func (s *RatingService) IssueToken(tenant, workOrderID string) string {
	payload := fmt.Sprintf("%s|%s|%d", tenant, workOrderID, time.Now().Unix())
	token := payload + "|" + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token))
}

// VerifyToken checks signature and expiry and returns the tenant and work
// order the token was issued for.
func (s *RatingService) VerifyToken(token string) (tenant, workOrderID string, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", fmt.Errorf("malformed rating token")
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 4 {
		return "", "", fmt.Errorf("malformed rating token")
	}
	payload := strings.Join(parts[:3], "|")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return "", "", fmt.Errorf("invalid rating token signature")
	}

	issued, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", fmt.Errorf("malformed rating token")
	}
	if time.Since(time.Unix(issued, 0)) > s.expiry {
		return "", "", fmt.Errorf("rating token expired")
	}

	return parts[0], parts[1], nil
}

// Submit records a score for a verified token. Each token accepts exactly
// one submission; score must be 1..5.
func (s *RatingService) Submit(token string, score int, comment string) (*model.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("score must be between 1 and 5")
	}

	tenant, workOrderID, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ratings[token]; ok {
		return nil, fmt.Errorf("rating already submitted for this token")
	}

	rating := &model.Rating{
		Tenant:      tenant,
		WorkOrderID: workOrderID,
		Score:       score,
		Comment:     comment,
		CreatedAt:   time.Now(),
	}
	s.ratings[token] = rating
	return rating, nil
}

// ListByTenant returns all ratings submitted for a tenant's work orders.
func (s *RatingService) ListByTenant(tenant string) []*model.Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Rating
	for _, r := range s.ratings {
		if r.Tenant == tenant {
			result = append(result, r)
		}
	}
	return result
}

func (s *RatingService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
