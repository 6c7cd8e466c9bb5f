package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	apperror "github.com/Yulian302/findit-gateway/common/errors"
	"github.com/Yulian302/findit-gateway/common/health"
	"github.com/Yulian302/findit-gateway/listing"
	"github.com/Yulian302/findit-gateway/metrics"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamoTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type RecordStore interface {
	listing.RecordStore

	health.ReadinessCheck
}

type DynamoDbRecordStore struct {
	Client         *dynamodb.Client
	TableName      string
	OwnerIndexName string
}

func NewRecordStore(dbClient *dynamodb.Client, tableName, ownerIndex string) *DynamoDbRecordStore {
	return &DynamoDbRecordStore{
		Client:         dbClient,
		TableName:      tableName,
		OwnerIndexName: ownerIndex,
	}
}

func (s *DynamoDbRecordStore) IsReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	_, err := s.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.TableName),
	})

	return err
}

func (s *DynamoDbRecordStore) Name() string {
	return "RecordStore[" + s.TableName + "]"
}

// QueryRecordsForUser returns the owner's records oldest first, relying on
// timestamp being the sort key of the owner index.
func (s *DynamoDbRecordStore) QueryRecordsForUser(ctx context.Context, userID string) ([]listing.Record, error) {
	start := time.Now()
	defer func() { metrics.RecordDynamoQuery("query_owner", time.Since(start)) }()

	paginator := dynamodb.NewQueryPaginator(s.Client, &dynamodb.QueryInput{
		TableName:              aws.String(s.TableName),
		IndexName:              aws.String(s.OwnerIndexName),
		KeyConditionExpression: aws.String("owner_id = :owner"),
		ExpressionAttributeValues: map[string]dynamoTypes.AttributeValue{
			":owner": &dynamoTypes.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(true),
	})

	var records []listing.Record
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query records for %s: %w", userID, err)
		}

		var batch []listing.Record
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal records: %w", err)
		}
		records = append(records, batch...)
	}

	// index order is authoritative, this only guards against equal keys across pages
	sortRecordsByTimestamp(records)
	return records, nil
}

// QueryAllRecordsOrderedByField scans the whole table and orders the result
// ascending by field ("timestamp" or "name").
func (s *DynamoDbRecordStore) QueryAllRecordsOrderedByField(ctx context.Context, field string) ([]listing.Record, error) {
	less, err := recordOrder(field)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.RecordDynamoQuery("scan", time.Since(start)) }()

	paginator := dynamodb.NewScanPaginator(s.Client, &dynamodb.ScanInput{
		TableName: aws.String(s.TableName),
	})

	var records []listing.Record
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan records: %w", err)
		}

		var batch []listing.Record
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal records: %w", err)
		}
		records = append(records, batch...)
	}

	slices.SortStableFunc(records, less)
	return records, nil
}

func (s *DynamoDbRecordStore) PutRecord(ctx context.Context, rec listing.Record) error {
	start := time.Now()
	defer func() { metrics.RecordDynamoQuery("put", time.Since(start)) }()

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *dynamoTypes.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("%w: record %s already exists", apperror.ErrInvalidInput, rec.ID)
		}
		return err
	}
	return nil
}

func sortRecordsByTimestamp(records []listing.Record) {
	slices.SortStableFunc(records, func(a, b listing.Record) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
}

func recordOrder(field string) (func(a, b listing.Record) int, error) {
	switch field {
	case "timestamp":
		return func(a, b listing.Record) int { return cmp.Compare(a.Timestamp, b.Timestamp) }, nil
	case "name":
		return func(a, b listing.Record) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}, nil
	default:
		return nil, fmt.Errorf("%w: cannot order records by %q", apperror.ErrInvalidInput, field)
	}
}
