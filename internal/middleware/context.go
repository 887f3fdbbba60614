package middleware

// ContextKeyRequestID is the echo context key under which the request
// identifier is stored.
const ContextKeyRequestID = "request_id"
