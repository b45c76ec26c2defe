package http

// WebhookParams struct - Path parameters of the webhook route
type WebhookParams struct {
	Secret string `params:"secret" validate:"required,secrettoken"`
}

// SecretTokenHeader carries the secret_token given to setWebhook
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
