package model

// Client-facing messages. Clients match on these, so they stay fixed.
const (
	MsgListFailed   = "Error fetching services"
	MsgNotFound     = "Country not found"
	MsgGetFailed    = "Error fetching the service"
	MsgCreateFailed = "Error creating service"
	MsgUpdateFailed = "Error updating the service"
	MsgDeleteFailed = "Error deleting the service"
	MsgDeleted      = "Service deleted successfully"
)
