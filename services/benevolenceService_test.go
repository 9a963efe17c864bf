package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"

	"github.com/stretchr/testify/assert"
)

func benevolenceRequestRow(status string, amountGranted interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"benevolence_request_id", "member_profile_id", "benevolence_fund_id",
		"reason", "amount_requested", "amount_granted", "request_status", "is_active",
	}).AddRow(1, 10, 2, "Rent assistance", 300.00, amountGranted, status, true)
}

func TestDisburseBenevolenceRequiresFinanceRole(t *testing.T) {
	_, mock, cleanup := setupServiceDB(t)
	defer cleanup()

	actor := permissions.MemberActor{MemberID: 5, Role: permissions.RoleDeacon}

	request, err := DisburseBenevolence(actor, 1)
	assert.Nil(t, request)

	var denied *models.PermissionDeniedError
	assert.ErrorAs(t, err, &denied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisburseBenevolenceWithoutGrantedAmount(t *testing.T) {
	_, mock, cleanup := setupServiceDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "benevolence_request"`).
		WillReturnRows(benevolenceRequestRow(models.BenevolenceStatusApproved, nil))

	actor := permissions.MemberActor{MemberID: 4, Role: permissions.RoleTreasurer}

	request, err := DisburseBenevolence(actor, 1)
	assert.Nil(t, request)

	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisburseBenevolenceInsufficientBalance(t *testing.T) {
	_, mock, cleanup := setupServiceDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "benevolence_request"`).
		WillReturnRows(benevolenceRequestRow(models.BenevolenceStatusApproved, 250.00))

	mock.ExpectBegin()
	// Balance guard rejects the debit
	mock.ExpectExec(`UPDATE "benevolence_fund"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	actor := permissions.MemberActor{MemberID: 4, Role: permissions.RoleTreasurer}

	request, err := DisburseBenevolence(actor, 1)
	assert.Nil(t, request)

	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "benevolenceFundId", validation.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisburseBenevolenceSuccess(t *testing.T) {
	_, mock, cleanup := setupServiceDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "benevolence_request"`).
		WillReturnRows(benevolenceRequestRow(models.BenevolenceStatusApproved, 250.00))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "benevolence_fund"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "benevolence_request"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectExec(`INSERT INTO "notification"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	actor := permissions.MemberActor{MemberID: 4, Role: permissions.RoleTreasurer}

	request, err := DisburseBenevolence(actor, 1)
	assert.NoError(t, err)
	assert.NotNil(t, request)
	assert.Equal(t, models.BenevolenceStatusDisbursed, request.Request_Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartBenevolenceReviewInvalidState(t *testing.T) {
	_, mock, cleanup := setupServiceDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "benevolence_request"`).
		WillReturnRows(benevolenceRequestRow(models.BenevolenceStatusDisbursed, 250.00))

	mock.ExpectBegin()
	mock.ExpectRollback()

	actor := permissions.MemberActor{MemberID: 2, Role: permissions.RolePastor}

	request, err := StartBenevolenceReview(actor, 1)
	assert.Nil(t, request)

	var invalid *models.InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.BenevolenceStatusDisbursed, invalid.From)
	assert.NoError(t, mock.ExpectationsWereMet())
}
