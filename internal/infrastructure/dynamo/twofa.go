package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
)

type twoFAItem struct {
	Email          string `dynamodbav:"email"`
	LoginAttemptID string `dynamodbav:"login_attempt_id"`
	Code           string `dynamodbav:"code"`
	ExpiresAt      int64  `dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// TwoFACodeStore is the durable challenge backend, keyed by email. An
// unconditional put replaces any pending challenge, and expires_at doubles as
// the table's TTL attribute so abandoned challenges disappear on their own.
type TwoFACodeStore struct {
	client    *dynamodb.Client
	tableName string
	ttl       time.Duration
}

func NewTwoFACodeStore(client *dynamodb.Client, tableName string, ttl time.Duration) *TwoFACodeStore {
	return &TwoFACodeStore{client: client, tableName: tableName, ttl: ttl}
}

func (s *TwoFACodeStore) Add(ctx context.Context, email domain.Email, attemptID domain.LoginAttemptID, code domain.TwoFACode) error {
	item, err := attributevalue.MarshalMap(twoFAItem{
		Email:          email.String(),
		LoginAttemptID: attemptID.String(),
		Code:           code.String(),
		ExpiresAt:      time.Now().Add(s.ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put challenge: %w", err)
	}
	return nil
}

func (s *TwoFACodeStore) Get(ctx context.Context, email domain.Email) (domain.LoginAttemptID, domain.TwoFACode, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("email", email.String()),
	})
	if err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("get challenge: %w", err)
	}
	if out.Item == nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("challenge for %s: %w", email, domain.ErrNotFound)
	}
	var item twoFAItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("unmarshal challenge: %w", err)
	}
	if item.ExpiresAt < time.Now().Unix() {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("challenge for %s: %w", email, domain.ErrNotFound)
	}
	attemptID, err := domain.ParseLoginAttemptID(item.LoginAttemptID)
	if err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("corrupt challenge record for %s", email)
	}
	code, err := domain.ParseTwoFACode(item.Code)
	if err != nil {
		return domain.LoginAttemptID{}, domain.TwoFACode{}, fmt.Errorf("corrupt challenge record for %s", email)
	}
	return attemptID, code, nil
}

func (s *TwoFACodeStore) Remove(ctx context.Context, email domain.Email) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("email", email.String()),
	})
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}
