package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/vineetpuranik/live-bootcamp-project/internal/domain"
	"github.com/vineetpuranik/live-bootcamp-project/internal/infrastructure/hash"
)

type userItem struct {
	Email        string `dynamodbav:"email"`
	PasswordHash string `dynamodbav:"password_hash"`
	Requires2FA  bool   `dynamodbav:"requires_2fa"`
}

// UserStore is the durable credential backend on DynamoDB, keyed by email.
// Uniqueness is enforced at the storage layer with a conditional put, so
// concurrent signups with the same email cannot both succeed.
type UserStore struct {
	client    *dynamodb.Client
	tableName string
	hasher    *hash.Pool
}

func NewUserStore(client *dynamodb.Client, tableName string, hasher *hash.Pool) *UserStore {
	return &UserStore{client: client, tableName: tableName, hasher: hasher}
}

func (s *UserStore) Add(ctx context.Context, email domain.Email, password domain.Password, requires2FA bool) error {
	passwordHash, err := s.hasher.Hash(ctx, password.String())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	item, err := attributevalue.MarshalMap(userItem{
		Email:        email.String(),
		PasswordHash: passwordHash,
		Requires2FA:  requires2FA,
	})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("user %s: %w", email, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, email domain.Email) (*domain.User, error) {
	item, err := s.getItem(ctx, email)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Email:        email,
		PasswordHash: item.PasswordHash,
		Requires2FA:  item.Requires2FA,
	}, nil
}

func (s *UserStore) Validate(ctx context.Context, email domain.Email, password domain.Password) error {
	item, err := s.getItem(ctx, email)
	if err != nil {
		return err
	}
	if err := s.hasher.Verify(ctx, password.String(), item.PasswordHash); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}

func (s *UserStore) getItem(ctx context.Context, email domain.Email) (*userItem, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("email", email.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &item, nil
}
