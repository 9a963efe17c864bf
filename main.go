package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/kingoftech-v01/egliseconnect-sub002/controllers"
	"github.com/kingoftech-v01/egliseconnect-sub002/initializers"
	"github.com/kingoftech-v01/egliseconnect-sub002/middlewares"
	"github.com/kingoftech-v01/egliseconnect-sub002/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitPushNotificationService()
	services.InitEmailService()
}

func main() {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.MemberLogin)
	router.POST("/signup", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.PublicMemberSignup)
	router.GET("/check-username", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.CheckUsernameAvailability)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	router.Static("/static", "./static")
	router.GET("/privacy", func(c *gin.Context) {
		c.File("./static/privacy.html")
	})

	// Password reset endpoints
	router.POST("/auth/forgot-password", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ForgotPassword)
	router.POST("/auth/verify-reset-code", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.VerifyResetCode)
	router.POST("/auth/reset-password", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ResetPassword)

	// Test endpoint for email service (remove in production)
	router.POST("/test/email", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.TestEmailService)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{

		// member routes
		auth.GET("/members/me", controllers.GetMemberProfile)
		auth.GET("/members/:member_profile_id", controllers.GetMember)
		auth.PATCH("/members/:member_profile_id", controllers.UpdateMemberProfile)
		auth.PATCH("/members/:member_profile_id/password", controllers.ChangeMemberPassword)
		auth.DELETE("/members/:member_profile_id/account", controllers.DeleteMemberAccount)

		// onboarding routes
		auth.POST("/members/:member_profile_id/membership-form", controllers.SubmitMembershipForm)

		// training routes
		auth.GET("/trainings/:id/progress", controllers.GetTrainingProgress)

		// interview routes (candidate side)
		auth.POST("/interviews/:id/accept", controllers.AcceptInterview)
		auth.POST("/interviews/:id/counter", controllers.CounterProposeInterview)

		// push token route
		auth.POST("/members/push-token", controllers.StorePushToken)

		// notification routes
		auth.GET("/members/:member_profile_id/notifications", controllers.GetMemberNotifications)
		auth.PATCH("/members/:member_profile_id/notifications/:notification_id", controllers.ToggleMemberNotificationStatus)
		auth.DELETE("/members/:member_profile_id/notifications/:notification_id", controllers.DeleteMemberNotification)
		auth.PATCH("/members/:member_profile_id/notifications/mark-all-read", controllers.MarkAllNotificationsAsRead)

		// prayer request routes
		auth.GET("/prayer-requests", controllers.GetPrayerRequests)
		auth.POST("/prayer-requests", controllers.CreatePrayerRequest)
		auth.PATCH("/prayer-requests/:id", controllers.UpdatePrayerRequestStatus)
		auth.DELETE("/prayer-requests/:id", controllers.DeletePrayerRequest)

		// help request routes
		auth.GET("/help-requests", controllers.GetHelpRequests)
		auth.POST("/help-requests", controllers.CreateHelpRequest)

		// benevolence routes (member side)
		auth.GET("/benevolence-requests", controllers.GetBenevolenceRequests)
		auth.POST("/benevolence-requests", controllers.CreateBenevolenceRequest)

		// meal train routes
		auth.GET("/meal-trains", controllers.GetMealTrains)
		auth.POST("/meal-trains", controllers.CreateMealTrain)
		auth.POST("/meal-trains/:id/signup", controllers.SignUpForMealTrain)
		auth.DELETE("/meal-trains/:id/signup", controllers.CancelMealTrainSlot)

		// volunteer routes
		auth.GET("/volunteer-schedules", controllers.GetVolunteerSchedules)
		auth.PATCH("/volunteer-schedules/:id", controllers.UpdateVolunteerScheduleStatus)

		// event routes
		auth.GET("/events", controllers.GetEvents)

		// donation routes
		auth.POST("/donations", controllers.RecordDonation)
		auth.GET("/donations/mine", controllers.GetMyDonations)

		// staff only routes
		staff := auth.Group("/")
		staff.Use(middlewares.CheckStaff)
		staff.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			staff.POST("/members", controllers.AdminMemberSignup)
			staff.GET("/members", controllers.GetMembers)

			staff.POST("/invitations", controllers.CreateInvitationCode)
			staff.DELETE("/invitations/:code", controllers.RevokeInvitationCode)

			// onboarding pipeline
			staff.POST("/members/:member_profile_id/review", controllers.StartMemberReview)
			staff.POST("/members/:member_profile_id/review/decision", controllers.DecideMemberReview)
			staff.POST("/members/:member_profile_id/reactivate", controllers.ReactivateMember)
			staff.GET("/reports/pipeline", controllers.GetPipelineReport)
			staff.POST("/reminders/run", controllers.RunReminderSweep)

			// training administration
			staff.POST("/trainings/:id/lessons", controllers.ScheduleTrainingLessons)
			staff.POST("/lessons/:id/complete", controllers.CompleteLesson)
			staff.POST("/lessons/:id/absent", controllers.MarkLessonAbsent)

			// interview administration
			staff.POST("/interviews", controllers.ScheduleMemberInterview)
			staff.POST("/interviews/:id/confirm", controllers.ConfirmInterview)
			staff.POST("/interviews/:id/cancel", controllers.CancelInterview)
			staff.POST("/interviews/:id/complete", controllers.CompleteInterview)
			staff.POST("/interviews/:id/no-show", controllers.RecordInterviewNoShow)
			staff.GET("/reports/interviews", controllers.GetInterviewStats)

			staff.PATCH("/help-requests/:id", controllers.UpdateHelpRequestStatus)

			staff.POST("/volunteer-schedules", controllers.CreateVolunteerSchedule)
			staff.POST("/events", controllers.CreateEvent)
			staff.DELETE("/events/:id", controllers.CancelEvent)
			staff.POST("/meal-trains/:id/close", controllers.CloseMealTrain)

			// push notification routes
			staff.POST("/notifications/send", controllers.SendPushNotification)
		}

		// care team routes
		care := auth.Group("/")
		care.Use(middlewares.CheckCareTeam)
		care.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			care.GET("/pastoral-care", controllers.GetPastoralCareRecords)
			care.POST("/pastoral-care", controllers.CreatePastoralCareRecord)
			care.PATCH("/pastoral-care/:id", controllers.UpdatePastoralCareStatus)
		}

		// finance team routes
		finance := auth.Group("/")
		finance.Use(middlewares.CheckFinance)
		finance.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			finance.GET("/benevolence-funds", controllers.GetBenevolenceFunds)
			finance.POST("/benevolence-requests/:id/review", controllers.StartBenevolenceReview)
			finance.POST("/benevolence-requests/:id/decision", controllers.DecideBenevolence)
			finance.POST("/benevolence-requests/:id/disburse", controllers.DisburseBenevolence)
			finance.GET("/reports/giving", controllers.GetGivingSummary)
		}
	}

	services.StartReminderScheduler()
	defer services.StopReminderScheduler()

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
