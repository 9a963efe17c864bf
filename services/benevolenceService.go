package services

import (
	"fmt"
	"time"

	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/models"
	"github.com/kingoftech-v01/egliseconnect-sub002/permissions"

	"github.com/doug-martin/goqu/v9"
)

func loadBenevolenceRequest(db *goqu.Database, requestID int) (*models.BenevolenceRequest, error) {
	var request models.BenevolenceRequest
	found, err := db.From("benevolence_request").
		Select("*").
		Where(goqu.And(
			goqu.C("benevolence_request_id").Eq(requestID),
			goqu.C("is_active").IsTrue(),
		)).
		ScanStruct(&request)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFound("benevolence request", requestID)
	}
	return &request, nil
}

func transitionBenevolence(tx *goqu.TxDatabase, request *models.BenevolenceRequest, to string, extra goqu.Record, actorID int) error {
	if !models.CanTransitionBenevolence(request.Request_Status, to) {
		return models.NewInvalidTransition("benevolence request", request.Request_Status, to)
	}

	record := goqu.Record{
		"request_status":  to,
		"updated_by":      actorID,
		"datetime_update": time.Now(),
	}
	for k, v := range extra {
		record[k] = v
	}

	result, err := tx.Update("benevolence_request").
		Set(record).
		Where(goqu.And(
			goqu.C("benevolence_request_id").Eq(request.Benevolence_Request_ID),
			goqu.C("request_status").Eq(request.Request_Status),
		)).
		Executor().Exec()
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.NewInvalidTransition("benevolence request", request.Request_Status, to)
	}

	request.Request_Status = to
	return nil
}

// StartBenevolenceReview moves a submitted request into review.
func StartBenevolenceReview(actor permissions.Actor, requestID int) (*models.BenevolenceRequest, error) {
	if !permissions.CanManageFinances(actor) {
		return nil, models.NewPermissionDenied("Finance role required to review benevolence requests")
	}

	request, err := loadBenevolenceRequest(initializers.DB, requestID)
	if err != nil {
		return nil, err
	}

	actorID := actorMemberID(actor, 0)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionBenevolence(tx, request, models.BenevolenceStatusReviewing, goqu.Record{}, actorID)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// DecideBenevolence approves or denies a request under review.
func DecideBenevolence(actor permissions.Actor, requestID int, decision models.BenevolenceDecision) (*models.BenevolenceRequest, error) {
	if !permissions.CanManageFinances(actor) {
		return nil, models.NewPermissionDenied("Finance role required to decide benevolence requests")
	}

	request, err := loadBenevolenceRequest(initializers.DB, requestID)
	if err != nil {
		return nil, err
	}

	actorID := actorMemberID(actor, 0)

	var to string
	extra := goqu.Record{}
	if decision.DecisionNotes != nil {
		extra["decision_notes"] = *decision.DecisionNotes
	}

	if decision.Approve {
		if decision.AmountGranted == nil || *decision.AmountGranted <= 0 {
			return nil, models.NewValidation("amountGranted", "an approved request needs a positive granted amount")
		}
		to = models.BenevolenceStatusApproved
		extra["amount_granted"] = *decision.AmountGranted
	} else {
		to = models.BenevolenceStatusDenied
	}

	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		return transitionBenevolence(tx, request, to, extra, actorID)
	})
	if err != nil {
		return nil, err
	}
	if decision.Approve {
		request.Amount_Granted = decision.AmountGranted
	}

	title := "Benevolence request update"
	message := "Your benevolence request was not approved."
	if decision.Approve {
		message = fmt.Sprintf("Your benevolence request was approved for %.2f.", *decision.AmountGranted)
	}
	CreateNotification(request.Member_Profile_ID, models.NotificationTypeBenevolenceUpdate, title, message, nil, actorID)

	return request, nil
}

// DisburseBenevolence debits the linked fund and marks the request disbursed
// in one transaction. The fund debit is guarded against going negative.
func DisburseBenevolence(actor permissions.Actor, requestID int) (*models.BenevolenceRequest, error) {
	if !permissions.CanManageFinances(actor) {
		return nil, models.NewPermissionDenied("Finance role required to disburse funds")
	}

	request, err := loadBenevolenceRequest(initializers.DB, requestID)
	if err != nil {
		return nil, err
	}
	if request.Amount_Granted == nil {
		return nil, models.NewValidation("requestId", "request has no granted amount to disburse")
	}
	amount := *request.Amount_Granted

	actorID := actorMemberID(actor, 0)
	err = initializers.DB.WithTx(func(tx *goqu.TxDatabase) error {
		// Debit first: the balance guard doubles as the concurrency check.
		result, err := tx.Update("benevolence_fund").
			Set(goqu.Record{
				"total_balance":   goqu.L("total_balance - ?", amount),
				"updated_by":      actorID,
				"datetime_update": time.Now(),
			}).
			Where(goqu.And(
				goqu.C("benevolence_fund_id").Eq(request.Benevolence_Fund_ID),
				goqu.C("is_active").IsTrue(),
				goqu.C("total_balance").Gte(amount),
			)).
			Executor().Exec()
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return models.NewValidation("benevolenceFundId", "fund has insufficient balance for this disbursement")
		}

		return transitionBenevolence(tx, request, models.BenevolenceStatusDisbursed, goqu.Record{
			"disbursed_at": time.Now(),
		}, actorID)
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your benevolence disbursement of %.2f has been processed.", amount)
	CreateNotification(request.Member_Profile_ID, models.NotificationTypeBenevolenceUpdate,
		"Benevolence disbursed", message, nil, actorID)

	return request, nil
}
