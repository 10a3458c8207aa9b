package main

// gameSessionKey is the scs session key holding the active game session id.
const gameSessionKey = "gameSessionID"
