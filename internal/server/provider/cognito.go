package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// CognitoAPI is the subset of the Cognito IDP client the adapter uses.
type CognitoAPI interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	ResendConfirmationCode(ctx context.Context, params *cip.ResendConfirmationCodeInput, optFns ...func(*cip.Options)) (*cip.ResendConfirmationCodeOutput, error)
	AdminGetUser(ctx context.Context, params *cip.AdminGetUserInput, optFns ...func(*cip.Options)) (*cip.AdminGetUserOutput, error)
}

// Cognito adapts an AWS Cognito user pool to the Provider interface.
type Cognito struct {
	client     CognitoAPI
	userPoolID string
	clientID   string
	timeout    time.Duration
}

func NewCognito(client CognitoAPI, userPoolID, clientID string, timeout time.Duration) *Cognito {
	return &Cognito{client: client, userPoolID: userPoolID, clientID: clientID, timeout: timeout}
}

func (c *Cognito) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Cognito) Register(ctx context.Context, name, email, password string) (*RegisterOutput, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	out, err := c.client.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(name)},
		},
	})
	if err != nil {
		return nil, mapRegisterError(err)
	}

	return &RegisterOutput{
		AccountID:           aws.ToString(out.UserSub),
		PendingConfirmation: !out.UserConfirmed,
		Delivery:            deliveryFrom(out.CodeDeliveryDetails),
	}, nil
}

func (c *Cognito) Confirm(ctx context.Context, username, code string) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	_, err := c.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return mapConfirmError(err)
	}
	return nil
}

func (c *Cognito) ResendCode(ctx context.Context, username string) (*Delivery, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	out, err := c.client.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(username),
	})
	if err != nil {
		return nil, mapResendError(err)
	}
	return deliveryFrom(out.CodeDeliveryDetails), nil
}

func (c *Cognito) Lookup(ctx context.Context, username string) (*Snapshot, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	out, err := c.client.AdminGetUser(ctx, &cip.AdminGetUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(username),
	})
	if err != nil {
		var notFound *types.UserNotFoundException
		if errors.As(err, &notFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, wrapUnavailable(err)
	}

	snapshot := &Snapshot{
		Confirmed: out.UserStatus == types.UserStatusTypeConfirmed,
	}
	for _, attr := range out.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			snapshot.AccountID = aws.ToString(attr.Value)
		case "email":
			snapshot.Email = aws.ToString(attr.Value)
		}
	}
	return snapshot, nil
}

func deliveryFrom(d *types.CodeDeliveryDetailsType) *Delivery {
	if d == nil {
		return nil
	}
	return &Delivery{
		Destination:   aws.ToString(d.Destination),
		Medium:        string(d.DeliveryMedium),
		AttributeName: aws.ToString(d.AttributeName),
	}
}

func mapRegisterError(err error) error {
	var (
		exists       *types.UsernameExistsException
		weakPassword *types.InvalidPasswordException
		invalidParam *types.InvalidParameterException
	)
	switch {
	case errors.As(err, &exists):
		return ErrDuplicateIdentity
	case errors.As(err, &weakPassword):
		return ErrWeakCredential
	case errors.As(err, &invalidParam):
		return ErrInvalidParameter
	}
	return wrapUnavailable(err)
}

func mapConfirmError(err error) error {
	var (
		mismatch      *types.CodeMismatchException
		expired       *types.ExpiredCodeException
		notAuthorized *types.NotAuthorizedException
	)
	switch {
	case errors.As(err, &mismatch):
		return ErrCodeMismatch
	case errors.As(err, &expired):
		return ErrCodeExpired
	case errors.As(err, &notAuthorized):
		// Cognito answers NotAuthorized for confirm attempts against an
		// already-confirmed identity.
		return ErrAlreadyConfirmed
	}
	return wrapUnavailable(err)
}

func mapResendError(err error) error {
	var (
		limit    *types.LimitExceededException
		tooMany  *types.TooManyRequestsException
		notFound *types.UserNotFoundException
	)
	switch {
	case errors.As(err, &limit), errors.As(err, &tooMany):
		return ErrRateLimited
	case errors.As(err, &notFound):
		return ErrIdentityNotFound
	}
	return wrapUnavailable(err)
}

func wrapUnavailable(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: %s", ErrUnavailable, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
