package accounts

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/umeduck/quack-note/internal/common"
)

type fakeDynamoDB struct {
	getOut *dynamodb.GetItemOutput
	getErr error

	putIn  *dynamodb.PutItemInput
	putErr error

	updateIn  *dynamodb.UpdateItemInput
	updateOut *dynamodb.UpdateItemOutput
	updateErr error
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = params
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = params
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func itemFor(accountID string, status Status, attempts int) map[string]types.AttributeValue {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return map[string]types.AttributeValue{
		"user_id":               &types.AttributeValueMemberS{Value: accountID},
		"email":                 &types.AttributeValueMemberS{Value: "ann@x.com"},
		"name":                  &types.AttributeValueMemberS{Value: "Ann"},
		"status":                &types.AttributeValueMemberS{Value: string(status)},
		"verification_attempts": &types.AttributeValueMemberN{Value: strconv.Itoa(attempts)},
		"created_at":            &types.AttributeValueMemberS{Value: now},
		"updated_at":            &types.AttributeValueMemberS{Value: now},
	}
}

func newDynamoRepo(f *fakeDynamoDB) *DynamoDBRepository {
	return NewDynamoDBRepository(f, "dev_quacknote_users", time.Second)
}

func TestDynamoDBRepository_Create_ConditionalPut(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{}
	repo := newDynamoRepo(f)

	account, err := repo.Create(context.Background(), "sub-1", "ann@x.com", "Ann")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if account.Status != StatusPending || account.VerificationAttempts != 0 {
		t.Fatalf("unexpected new account: %+v", account)
	}

	if f.putIn == nil || f.putIn.ConditionExpression == nil {
		t.Fatal("expected a conditional PutItem")
	}
	if got := *f.putIn.ConditionExpression; got != "attribute_not_exists(user_id)" {
		t.Fatalf("unexpected condition expression: %q", got)
	}
}

func TestDynamoDBRepository_Create_DuplicateMapsToErrDuplicateAccount(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{putErr: &types.ConditionalCheckFailedException{}}
	repo := newDynamoRepo(f)

	_, err := repo.Create(context.Background(), "sub-1", "ann@x.com", "Ann")
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestDynamoDBRepository_Create_OtherErrorMapsToStoreUnavailable(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{putErr: errors.New("throughput exceeded")}
	repo := newDynamoRepo(f)

	_, err := repo.Create(context.Background(), "sub-1", "ann@x.com", "Ann")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestDynamoDBRepository_FindByID(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{getOut: &dynamodb.GetItemOutput{Item: itemFor("sub-1", StatusPending, 2)}}
	repo := newDynamoRepo(f)

	account, err := repo.FindByID(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if account.AccountID != "sub-1" || account.Status != StatusPending || account.VerificationAttempts != 2 {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestDynamoDBRepository_FindByID_EmptyItemIsNotFound(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{getOut: &dynamodb.GetItemOutput{}}
	repo := newDynamoRepo(f)

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDynamoDBRepository_SetStatus(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{updateOut: &dynamodb.UpdateItemOutput{Attributes: itemFor("sub-1", StatusActive, 0)}}
	repo := newDynamoRepo(f)

	account, err := repo.SetStatus(context.Background(), "sub-1", StatusActive)
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if account.Status != StatusActive {
		t.Fatalf("unexpected account: %+v", account)
	}

	expr := *f.updateIn.UpdateExpression
	if !strings.Contains(expr, "#status = :status") || !strings.Contains(expr, "updated_at = :updated_at") {
		t.Fatalf("unexpected update expression: %q", expr)
	}
	if *f.updateIn.ConditionExpression != "attribute_exists(user_id)" {
		t.Fatalf("unexpected condition expression: %q", *f.updateIn.ConditionExpression)
	}
}

func TestDynamoDBRepository_IncrementAttempts_UsesAtomicAdd(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{updateOut: &dynamodb.UpdateItemOutput{Attributes: itemFor("sub-1", StatusPending, 3)}}
	repo := newDynamoRepo(f)

	account, err := repo.IncrementAttempts(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("IncrementAttempts error: %v", err)
	}
	if account.VerificationAttempts != 3 {
		t.Fatalf("attempts = %d, want 3", account.VerificationAttempts)
	}

	expr := *f.updateIn.UpdateExpression
	if !strings.Contains(expr, "ADD verification_attempts :one") {
		t.Fatalf("increment must use a server-side ADD, got %q", expr)
	}
	if f.updateIn.ReturnValues != types.ReturnValueAllNew {
		t.Fatalf("expected ALL_NEW return values, got %v", f.updateIn.ReturnValues)
	}
}

func TestDynamoDBRepository_ResetAttempts(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{updateOut: &dynamodb.UpdateItemOutput{Attributes: itemFor("sub-1", StatusActive, 0)}}
	repo := newDynamoRepo(f)

	account, err := repo.ResetAttempts(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("ResetAttempts error: %v", err)
	}
	if account.VerificationAttempts != 0 {
		t.Fatalf("attempts = %d, want 0", account.VerificationAttempts)
	}

	expr := *f.updateIn.UpdateExpression
	if !strings.Contains(expr, "verification_attempts = :zero") {
		t.Fatalf("unexpected update expression: %q", expr)
	}
}

func TestDynamoDBRepository_Update_MissingAccountIsNotFound(t *testing.T) {
	t.Parallel()

	f := &fakeDynamoDB{updateErr: &types.ConditionalCheckFailedException{}}
	repo := newDynamoRepo(f)

	_, err := repo.IncrementAttempts(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
