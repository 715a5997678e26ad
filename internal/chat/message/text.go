package message

import "strings"

const (
	// LeaveKeyword - line sent by client to leave the chat.
	LeaveKeyword = "*EXIT"
	// AnonymousNickname - nickname of the client who replied with an empty line.
	AnonymousNickname = "Anonymous Client"

	systemPrefix = "* System * - "
)

// System - formats notice generated by the server.
func System(body string) string {
	return systemPrefix + body
}

// NicknamePrompt - first line sent to a newly connected client.
func NicknamePrompt() string {
	return System("Please enter a nickname for a client:")
}

// NoNickname - sent when the client replied to the prompt with an empty line.
func NoNickname() string {
	return System("No nickname entered.")
}

// NicknameSet - confirms assigned nickname.
func NicknameSet(nickname string) string {
	return System("Nickname Set as " + nickname)
}

// Welcome - closes the handshake.
func Welcome() string {
	return System("Welcome to the chat! To leave chat type " + LeaveKeyword)
}

// Joined - broadcast after the handshake is done.
func Joined(nickname string) string {
	return System(nickname + " has joined the chat.")
}

// Left - broadcast when the client leaves or disconnects.
func Left(nickname string) string {
	return System(nickname + " has left the chat")
}

// Chat - formats chat line of the client.
func Chat(nickname, line string) string {
	return nickname + ": " + line
}

// Nickname - resolves reply to the nickname prompt.
// Reply is used verbatim unless it is empty or consists of white space only,
// in that case AnonymousNickname is returned and anonymous is true.
func Nickname(reply string) (nickname string, anonymous bool) {
	if strings.TrimSpace(reply) == "" {
		return AnonymousNickname, true
	}
	return reply, false
}
