package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/umeduck/quack-note/internal/common"
	"github.com/umeduck/quack-note/internal/server/accounts"
)

// DynamoDBRepository reads and writes the settings attributes of the users
// table. It shares the table (and the client interface) with the accounts
// repository; Upsert only ever touches settings attributes, so account
// lifecycle fields cannot be clobbered by a settings save.
type DynamoDBRepository struct {
	client  accounts.DynamoDBAPI
	table   string
	timeout time.Duration
}

func NewDynamoDBRepository(client accounts.DynamoDBAPI, table string, timeout time.Duration) *DynamoDBRepository {
	return &DynamoDBRepository{client: client, table: table, timeout: timeout}
}

func key(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *DynamoDBRepository) Find(ctx context.Context, userID string) (*Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       key(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get_item: %v", ErrStoreUnavailable, err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	s := &Settings{}
	if err := attributevalue.UnmarshalMap(out.Item, s); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrStoreUnavailable, err)
	}
	return s, nil
}

func (r *DynamoDBRepository) Upsert(ctx context.Context, userID string, update Update) (*Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	values := map[string]types.AttributeValue{}
	for name, v := range map[string]any{
		":meeting_title":     update.MeetingTitle,
		":auto_delete_days":  update.AutoDeleteDays,
		":slack_webhook_url": update.SlackWebhookURL,
	} {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal: %v", ErrStoreUnavailable, err)
		}
		values[name] = av
	}
	values[":now"] = &types.AttributeValueMemberS{
		Value: time.Now().UTC().Format(time.RFC3339Nano),
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key:       key(userID),
		UpdateExpression: aws.String(
			"SET meeting_title = :meeting_title, " +
				"auto_delete_days = :auto_delete_days, " +
				"slack_webhook_url = :slack_webhook_url, " +
				"updated_at = :now, " +
				"created_at = if_not_exists(created_at, :now)"),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: update_item: %v", ErrStoreUnavailable, err)
	}

	s := &Settings{}
	if err := attributevalue.UnmarshalMap(out.Attributes, s); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrStoreUnavailable, err)
	}
	return s, nil
}
