package apiresponse

const (
	MsgTaskCreated             = "taskCreated"
	MsgTaskUpdated             = "taskUpdated"
	MsgTaskCompleted           = "taskCompleted"
	MsgTaskDeleted             = "taskDeleted"
	MsgTaskRetrieved           = "taskRetrieved"
	MsgAllTasksRetrieved       = "allTasksRetrieved"
	MsgRecentTasksRetrieved    = "recentTasksRetrieved"
	MsgActiveTasksRetrieved    = "activeTasksRetrieved"
	MsgCompletedTasksRetrieved = "completedTasksRetrieved"
	MsgProgressRetrieved       = "progressRetrieved"
	MsgTaskNotFound            = "taskNotFound"
	MsgInvalidTaskID           = "invalidTaskID"
	MsgInvalidTaskPayload      = "invalidTaskPayload"
	MsgValidationFailed        = "validationFailed"
	MsgUnauthorized            = "unauthorizedAPIKey"
	MsgTooManyRequests         = "tooManyRequests"
	MsgTitleTooLong            = "titleTooLong"
	MsgDescriptionTooLong      = "descriptionTooLong"
	MsgInternalError           = "internalError"
)
