// Package dynamo stores membership collections in a single DynamoDB table.
//
// Items are keyed by PK = "USER#<user id>#<kind>" and SK = "<member id>".
package dynamo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/config"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

const (
	attrPK        = "PK"
	attrSK        = "SK"
	attrCreatedAt = "createdAt"
)

// API is the subset of the DynamoDB client used by MembershipStore.
type API interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var _ model.MembershipStore = (*MembershipStore)(nil)

// MembershipStore implements model.MembershipStore for one collection kind.
type MembershipStore struct {
	client    API
	tableName string
	kind      model.Kind
	exists    MemberCheck
	now       func() time.Time
}

// MemberCheck reports whether memberID names an existing item.
type MemberCheck func(ctx context.Context, memberID uuid.UUID) (bool, error)

// Option configures a MembershipStore.
type Option func(*MembershipStore)

// WithMemberCheck makes Add fail with model.ErrNotFound for members that
// check reports as missing.
func WithMemberCheck(check MemberCheck) Option {
	return func(s *MembershipStore) {
		s.exists = check
	}
}

// NewClient builds a DynamoDB client from cfg.
func NewClient(ctx context.Context, cfg config.DynamoDB) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg), nil
}

func NewMembershipStore(client API, tableName string, kind model.Kind, opts ...Option) *MembershipStore {
	s := &MembershipStore{
		client:    client,
		tableName: tableName,
		kind:      kind,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MembershipStore) pk(userID uuid.UUID) string {
	return "USER#" + userID.String() + "#" + string(s.kind)
}

func (s *MembershipStore) key(userID, memberID uuid.UUID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: s.pk(userID)},
		attrSK: &types.AttributeValueMemberS{Value: memberID.String()},
	}
}

// ListMembers returns the memberships of userID, newest first.
func (s *MembershipStore) ListMembers(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": attrPK,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: s.pk(userID)},
		},
	})

	memberships := make([]model.Membership, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("Query: %w", err)
		}
		for _, item := range page.Items {
			m, err := unmarshalMembership(userID, item)
			if err != nil {
				return nil, err
			}
			memberships = append(memberships, m)
		}
	}

	slices.SortStableFunc(memberships, func(a, b model.Membership) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return memberships, nil
}

// Add stores the membership. An existing item keeps its creation time.
func (s *MembershipStore) Add(ctx context.Context, userID, memberID uuid.UUID) error {
	if s.exists != nil {
		ok, err := s.exists(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to look up %s member %s: %w", s.kind, memberID, err)
		}
		if !ok {
			return fmt.Errorf("%s member %s: %w", s.kind, memberID, model.ErrNotFound)
		}
	}

	item := s.key(userID, memberID)
	item[attrCreatedAt] = &types.AttributeValueMemberS{Value: s.now().UTC().Format(time.RFC3339Nano)}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#sk)"),
		ExpressionAttributeNames: map[string]string{
			"#sk": attrSK,
		},
	})
	if err != nil {
		var exists *types.ConditionalCheckFailedException
		if errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("PutItem: %w", err)
	}
	return nil
}

func (s *MembershipStore) Remove(ctx context.Context, userID, memberID uuid.UUID) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(userID, memberID),
	})
	if err != nil {
		return fmt.Errorf("DeleteItem: %w", err)
	}
	return nil
}

func unmarshalMembership(userID uuid.UUID, item map[string]types.AttributeValue) (model.Membership, error) {
	sk, ok := item[attrSK].(*types.AttributeValueMemberS)
	if !ok {
		return model.Membership{}, fmt.Errorf("item has no %s attribute", attrSK)
	}
	memberID, err := uuid.Parse(sk.Value)
	if err != nil {
		return model.Membership{}, fmt.Errorf("invalid member id %q: %w", sk.Value, err)
	}

	m := model.Membership{UserID: userID, MemberID: memberID}
	if created, ok := item[attrCreatedAt].(*types.AttributeValueMemberS); ok {
		if t, err := time.Parse(time.RFC3339Nano, created.Value); err == nil {
			m.CreatedAt = t
		}
	}
	return m, nil
}
