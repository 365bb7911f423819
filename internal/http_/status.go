package http_

var reasonPhrases = map[int]string{
	100: "Continue",
	200: "OK",
	304: "Not Modified",
	400: "Bad Request",
	402: "Payment Required",
	404: "Not Found",
	500: "Server Error",
}

// ReasonPhrase returns "" for codes outside the table.
func ReasonPhrase(statusCode int) string {
	return reasonPhrases[statusCode]
}
