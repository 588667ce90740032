package handler

// Success envelopes. Errors never pass through here: they travel as
// domain errors and are rendered by the central error handler.

type dataResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

// idData carries a freshly inserted row id.
type idData struct {
	ID int64 `json:"id"`
}

// lastInsertData mirrors the legacy field name the version endpoint
// reports.
type lastInsertData struct {
	LastInsertID int64 `json:"last_insert_id"`
}

func successData(data any) dataResponse {
	return dataResponse{Status: "success", Data: data}
}

func successMessage(msg string) messageResponse {
	return messageResponse{Status: "success", Message: msg}
}

// dedupResponse reports a conditional insert: status is "success" for a
// fresh row and "exists" when the predicate already matched.
func dedupResponse(id int64, existed bool) dataResponse {
	status := "success"
	if existed {
		status = "exists"
	}
	return dataResponse{Status: status, Data: idData{ID: id}}
}
