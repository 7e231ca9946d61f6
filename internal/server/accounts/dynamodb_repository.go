package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/umeduck/quack-note/internal/common"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoDBRepository stores accounts in a single DynamoDB table keyed by
// user_id. The attempts counter is mutated server-side (ADD / conditioned
// SET), so concurrent confirmation attempts cannot lose updates.
type DynamoDBRepository struct {
	client  DynamoDBAPI
	table   string
	timeout time.Duration
}

func NewDynamoDBRepository(client DynamoDBAPI, table string, timeout time.Duration) *DynamoDBRepository {
	return &DynamoDBRepository{client: client, table: table, timeout: timeout}
}

func (r *DynamoDBRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func key(accountID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: accountID},
	}
}

func (r *DynamoDBRepository) Create(ctx context.Context, accountID, email, displayName string) (*Account, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	now := time.Now().UTC()
	account := &Account{
		AccountID:            accountID,
		Email:                email,
		DisplayName:          displayName,
		Status:               StatusPending,
		VerificationAttempts: 0,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	item, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %v", ErrStoreUnavailable, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("%w: put_item: %v", ErrStoreUnavailable, err)
	}

	return account, nil
}

func (r *DynamoDBRepository) FindByID(ctx context.Context, accountID string) (*Account, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       key(accountID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get_item: %v", ErrStoreUnavailable, err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	account := &Account{}
	if err := attributevalue.UnmarshalMap(out.Item, account); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrStoreUnavailable, err)
	}
	return account, nil
}

func (r *DynamoDBRepository) SetStatus(ctx context.Context, accountID string, status Status) (*Account, error) {
	return r.update(ctx, accountID, "SET #status = :status, updated_at = :updated_at",
		map[string]string{"#status": "status"},
		map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		})
}

func (r *DynamoDBRepository) IncrementAttempts(ctx context.Context, accountID string) (*Account, error) {
	// ADD is applied server-side, so the read-modify-write never leaves
	// this process racing another one.
	return r.update(ctx, accountID, "SET updated_at = :updated_at ADD verification_attempts :one",
		nil,
		map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		})
}

func (r *DynamoDBRepository) ResetAttempts(ctx context.Context, accountID string) (*Account, error) {
	return r.update(ctx, accountID, "SET verification_attempts = :zero, updated_at = :updated_at",
		nil,
		map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
		})
}

func (r *DynamoDBRepository) update(ctx context.Context, accountID, expr string,
	names map[string]string, values map[string]types.AttributeValue) (*Account, error) {

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	values[":updated_at"] = &types.AttributeValueMemberS{
		Value: time.Now().UTC().Format(time.RFC3339Nano),
	}

	in := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       key(accountID),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(user_id)"),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}
	if len(names) > 0 {
		in.ExpressionAttributeNames = names
	}

	out, err := r.client.UpdateItem(ctx, in)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: update_item: %v", ErrStoreUnavailable, err)
	}

	account := &Account{}
	if err := attributevalue.UnmarshalMap(out.Attributes, account); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrStoreUnavailable, err)
	}
	return account, nil
}
