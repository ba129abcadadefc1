/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
)

var botPubKey ed25519.PublicKey
var botAppId string
var pairCmdId string

var client *discordgo.Session

type TopLevelCommand string

const (
	PairCmd TopLevelCommand = "pair"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	PairCmd: pairCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("pairbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("pairbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("pairbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("pairbot.int: unimplemented interaction type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("pairbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("pairbot.int: failed to write resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	pubKeyBytes, err := hex.DecodeString(os.Getenv("PAIRBOT_PUBKEY"))
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		log.Fatalf("pairbot.init: PAIRBOT_PUBKEY must be a hex encoded ed25519 public key")
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	botToken := os.Getenv("PAIRBOT_TOKEN")
	if botToken == "" {
		log.Fatalf("pairbot.init: PAIRBOT_TOKEN must be set")
	}
	botAppId = os.Getenv("PAIRBOT_APPID")
	if botAppId == "" {
		log.Fatalf("pairbot.init: PAIRBOT_APPID must be set")
	}
	pairCmdId = os.Getenv("PAIRBOT_CMDID")

	client, err = discordgo.New("Bot " + botToken)
	if err != nil {
		log.Fatalf("pairbot.init: Failed to initialize discord client: %v", err)
	}
}

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand,
	lastHash string) bool {

	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("pairbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	hasher := sha256.New()
	hasher.Write(cmdJson)
	hash := hasher.Sum(nil)
	hexString := hex.EncodeToString(hash)

	shouldUpdate := (hexString != lastHash)

	if shouldUpdate {
		log.Printf("pairbot.reg: updating cmd reg; please update PAIRBOT_CMDHASH to %v",
			hexString)
	}

	return shouldUpdate
}

func registerSlashCommands() {
	pairCmd := &discordgo.ApplicationCommand{
		Name:        string(PairCmd),
		Description: "Swiss pairing commands; try /pair help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PairHelpCmd),
				Description: "Show usage for pair",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PairCalCmd),
				Description: "Show upcoming events on the calendar",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "Number of days to retrieve (default is 14)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PairNextCmd),
				Description: "Compute next round pairings for an event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "Event id of the tournament (as returned by cal)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "system",
						Description: "Pairing system to apply (default is burstein)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PairStandingsCmd),
				Description: "Get current standings for an event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "Event id of the tournament (as returned by cal)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(PairChecklistCmd),
				Description: "Show the arbiter audit sheet for an event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "Event id of the tournament (as returned by cal)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
		},
	}

	if pairCmdId == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", pairCmd)
		if err != nil {
			log.Printf("pairbot.reg: failed to register %v: %v", pairCmd.Name,
				err)
			return
		}

		log.Printf("pairbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(pairCmd, os.Getenv("PAIRBOT_CMDHASH")) {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", pairCmdId,
			pairCmd)
		if err != nil {
			log.Printf("pairbot.reg: failed to update %v: %v", pairCmd.Name,
				err)
			return
		}

		log.Printf("pairbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("pairbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/PairBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("pairbot.main: Serve failed: %v", err)
	}

	log.Printf("pairbot.main: exiting")
}
