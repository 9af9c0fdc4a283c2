package services

// ServiceContainer holds all service facades used by the handlers.
type ServiceContainer struct {
	Commission   CommissionSvcFacade
	Payout       PayoutSvcFacade
	OwnerBalance OwnerBalanceSvcFacade
	Settings     SettingsSvcFacade
	User         UserSvcFacade
	Token        TokenSvcFacade
	Notifier     NotificationSvcFacade
}
