package ledger

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
	"github.com/soartravel/soar/config"
	"github.com/soartravel/soar/errors"
)

const (
	attrUserID                 = "userId"
	attrSyncedTripIDs          = "syncedTripIds"
	attrSyncedFlightBookingIDs = "syncedFlightBookingIds"
	attrUpdatedAt              = "updatedAt"
)

type (
	// DynamoAPI is the part of the DynamoDB client the ledger uses.
	DynamoAPI interface {
		GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
		UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	}

	// DynamoStore keeps one item per user with string-set attributes, grown with ADD update expressions.
	DynamoStore struct {
		client    DynamoAPI
		tableName string
	}

	dynamoItem struct {
		UserID                 string   `dynamodbav:"userId"`
		SyncedTripIDs          []string `dynamodbav:"syncedTripIds,stringset,omitempty"`
		SyncedFlightBookingIDs []string `dynamodbav:"syncedFlightBookingIds,stringset,omitempty"`
		UpdatedAt              string   `dynamodbav:"updatedAt,omitempty"`
	}
)

var (
	_ Store = (*DynamoStore)(nil)
)

func NewDynamoStore(client DynamoAPI, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
	}
}

// NewDynamoStoreFromConfig builds the DynamoDB client from the default AWS credential chain.
func NewDynamoStoreFromConfig(ctx context.Context, conf *config.LedgerConfig) (*DynamoStore, error) {
	if conf.DynamoDBTable == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "dynamodb table is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if conf.AWSRegion != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(conf.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load aws config")
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if conf.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(conf.DynamoDBEndpoint)
		}
	})
	return NewDynamoStore(client, conf.DynamoDBTable), nil
}

func (s *DynamoStore) Get(ctx context.Context, userID string) (*Entry, error) {
	if userID == "" {
		return nil, errors.InvalidRequest(nil, "user id is required")
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			attrUserID: &types.AttributeValueMemberS{Value: userID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read ledger of %s", userID)
	}
	if len(out.Item) == 0 {
		return &Entry{UserID: userID}, nil
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, errors.Decode(err, "invalid ledger item of %s", userID)
	}

	return &Entry{
		UserID:                 userID,
		SyncedTripIDs:          item.SyncedTripIDs,
		SyncedFlightBookingIDs: item.SyncedFlightBookingIDs,
	}, nil
}

func (s *DynamoStore) Add(ctx context.Context, userID string, kind Kind, ids ...string) error {
	if err := validateAdd(userID, kind); err != nil {
		return err
	}

	// string sets reject empty and duplicate members
	ids = lo.Uniq(lo.Compact(ids))
	if len(ids) == 0 {
		return nil
	}

	attr := attrSyncedTripIDs
	if kind == KindFlightBooking {
		attr = attrSyncedFlightBookingIDs
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			attrUserID: &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression: aws.String("ADD #ids :ids SET #updatedAt = :updatedAt"),
		ExpressionAttributeNames: map[string]string{
			"#ids":       attr,
			"#updatedAt": attrUpdatedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ids":       &types.AttributeValueMemberSS{Value: ids},
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to add %d %s ids to ledger of %s", len(ids), kind, userID)
	}
	return nil
}
