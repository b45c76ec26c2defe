package main

// @title Telegram Relay API
// @version 1.0
// @description Receives Telegram Bot API webhook calls on a sleeping PaaS instance and answers them.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
// @schemes https http
import (
	_ "telegram-relay/docs"
)

func main() {
	Execute()
}
