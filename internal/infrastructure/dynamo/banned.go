package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type bannedTokenItem struct {
	Token     string `dynamodbav:"token"`
	ExpiresAt int64  `dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// BannedTokenStore is the durable revocation backend. Entries carry an
// expires_at attribute registered as the table's TTL, so DynamoDB evicts them
// once the revoked token would have expired on its own. Eviction is lazy, so
// Contains also compares the deadline itself.
type BannedTokenStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewBannedTokenStore(client *dynamodb.Client, tableName string) *BannedTokenStore {
	return &BannedTokenStore{client: client, tableName: tableName}
}

func (s *BannedTokenStore) Store(ctx context.Context, token string, ttl time.Duration) error {
	item, err := attributevalue.MarshalMap(bannedTokenItem{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal banned token: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put banned token: %w", err)
	}
	return nil
}

func (s *BannedTokenStore) Contains(ctx context.Context, token string) (bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("token", token),
	})
	if err != nil {
		return false, fmt.Errorf("get banned token: %w", err)
	}
	if out.Item == nil {
		return false, nil
	}
	var item bannedTokenItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return false, fmt.Errorf("unmarshal banned token: %w", err)
	}
	return item.ExpiresAt >= time.Now().Unix(), nil
}
