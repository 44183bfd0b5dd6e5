// Package locale holds the user-facing message catalog. The set of
// supported locales is fixed at compile time; unrecognized codes fall back
// to the default with a logged warning.
package locale

import (
	"strings"

	"github.com/Strum355/log"
)

// Default is the locale applied when no valid locale is configured.
const Default = "en"

// Messages is one locale's full message catalog.
type Messages struct {
	NoPrivateMessages         string
	VoiceChannelNeeded        string
	CannotConnect             string
	NoArgs                    string
	SameVoiceChannel          string
	NothingPlaying            string
	NoMoreSongs               string
	VolumeBetween             string
	ValidNumberPosition       string
	CouldNotBeFound           string
	RestrictedOrNotFound      string
	HasBeenAdded              string
	ErrorWhileParsingVideo    string
	ErrorWhileParsingPlaylist string

	CreatedPlayerTitle       string
	CreatedPlayerDescription string

	NowPlayingTitle string
	VideoLink       string
	ChannelLink     string
	RemainingTime   string
	Live            string

	AskedBy     string
	BeenSkipped string

	VolumeTitle string
	ChangedFrom string
	To          string

	PauseTitle        string
	PauseDescription  string
	ResumeTitle       string
	ResumeDescription string

	RemoveTitle string
	RemovedBy   string
	Published   string
	Views       string

	ErrorTitle string

	DestroyedPlayerTitle       string
	DestroyedPlayerDescription string

	AddedBy     string
	LuckySearch string

	QueueTitle string

	LyricsSearching string
	LyricsAskedBy   string

	PlaylistPrefix       string
	PlaylistHasBeenAdded string

	HelpTitle string
}

var english = &Messages{
	NoPrivateMessages:         "I do not reply to private messages.",
	VoiceChannelNeeded:        "You need to be in a voice channel to use this command.",
	CannotConnect:             "I cannot connect to your voice channel, make sure I have the proper permissions!",
	NoArgs:                    "You have to enter a search term.",
	SameVoiceChannel:          "You must be in the same voice channel as the bot to be able to listen to music.",
	NothingPlaying:            "There is nothing currently playing.",
	NoMoreSongs:               "There are no more songs in the queue.",
	VolumeBetween:             "Volume must be a number between `0` and `100`!",
	ValidNumberPosition:       "The position must be a valid number higher than `0`.",
	CouldNotBeFound:           "This song could not be found.",
	RestrictedOrNotFound:      "This song is restricted or could not be found!",
	HasBeenAdded:              "has been added to the queue.",
	ErrorWhileParsingVideo:    "An error occurred while searching the video.",
	ErrorWhileParsingPlaylist: "An error occurred while parsing the playlist songs.",

	CreatedPlayerTitle:       "Info",
	CreatedPlayerDescription: "The `music player` has been **created**!",

	NowPlayingTitle: "Now playing",
	VideoLink:       "Video link",
	ChannelLink:     "Channel link",
	RemainingTime:   "Time remaining:",
	Live:            "◉ LIVE",

	AskedBy:     "Asked by",
	BeenSkipped: "has been skipped",

	VolumeTitle: "🔊 Volume",
	ChangedFrom: "Changed from",
	To:          "to",

	PauseTitle:        "Info",
	PauseDescription:  "**⏸ Paused the music.**",
	ResumeTitle:       "Info",
	ResumeDescription: "**▶ Resumed the music.**",

	RemoveTitle: "🚫 Removed",
	RemovedBy:   "🔎 Removed by",
	Published:   "Published",
	Views:       "Views",

	ErrorTitle: "Error",

	DestroyedPlayerTitle:       "Info",
	DestroyedPlayerDescription: "The `music player` has been **destroyed**!",

	AddedBy:     "🔎 Added by",
	LuckySearch: "with lucky search.",

	QueueTitle: "queue",

	LyricsSearching: "Searching...",
	LyricsAskedBy:   "Asked by",

	PlaylistPrefix:       "The playlist",
	PlaylistHasBeenAdded: "has been added to the queue.",

	HelpTitle: "Help Panel",
}

var french = &Messages{
	NoPrivateMessages:         "Je ne réponds pas aux messages privés.",
	VoiceChannelNeeded:        "Vous devez être dans un salon vocal pour utiliser cette commande.",
	CannotConnect:             "Je ne peux pas me connecter à votre salon vocal, vérifiez mes permissions !",
	NoArgs:                    "Vous devez entrer un terme de recherche.",
	SameVoiceChannel:          "Vous devez être dans le même salon vocal que le bot pour écouter de la musique.",
	NothingPlaying:            "Il n'y a rien en cours de lecture.",
	NoMoreSongs:               "Il n'y a plus de chansons dans la file d'attente.",
	VolumeBetween:             "Le volume doit être un nombre entre `0` et `100` !",
	ValidNumberPosition:       "La position doit être un nombre valide supérieur à `0`.",
	CouldNotBeFound:           "Cette chanson est introuvable.",
	RestrictedOrNotFound:      "Cette chanson est restreinte ou introuvable !",
	HasBeenAdded:              "a été ajoutée à la file d'attente.",
	ErrorWhileParsingVideo:    "Une erreur est survenue lors de la recherche de la vidéo.",
	ErrorWhileParsingPlaylist: "Une erreur est survenue lors de l'analyse de la playlist.",

	CreatedPlayerTitle:       "Info",
	CreatedPlayerDescription: "Le `lecteur de musique` a été **créé** !",

	NowPlayingTitle: "En cours de lecture",
	VideoLink:       "Lien de la vidéo",
	ChannelLink:     "Lien de la chaîne",
	RemainingTime:   "Temps restant :",
	Live:            "◉ LIVE",

	AskedBy:     "Demandé par",
	BeenSkipped: "a été passée",

	VolumeTitle: "🔊 Volume",
	ChangedFrom: "Changé de",
	To:          "à",

	PauseTitle:        "Info",
	PauseDescription:  "**⏸ Musique mise en pause.**",
	ResumeTitle:       "Info",
	ResumeDescription: "**▶ Musique reprise.**",

	RemoveTitle: "🚫 Retirée",
	RemovedBy:   "🔎 Retirée par",
	Published:   "Publiée",
	Views:       "Vues",

	ErrorTitle: "Erreur",

	DestroyedPlayerTitle:       "Info",
	DestroyedPlayerDescription: "Le `lecteur de musique` a été **détruit** !",

	AddedBy:     "🔎 Ajoutée par",
	LuckySearch: "avec la recherche chanceuse.",

	QueueTitle: "file d'attente",

	LyricsSearching: "Recherche...",
	LyricsAskedBy:   "Demandé par",

	PlaylistPrefix:       "La playlist",
	PlaylistHasBeenAdded: "a été ajoutée à la file d'attente.",

	HelpTitle: "Panneau d'aide",
}

var catalogs = map[string]*Messages{
	"en": english,
	"fr": french,
}

// Supported returns the locale codes with a catalog.
func Supported() []string {
	codes := make([]string, 0, len(catalogs))
	for code := range catalogs {
		codes = append(codes, code)
	}
	return codes
}

// Load returns the catalog for code, falling back to the default locale
// when the code is unknown.
func Load(code string) *Messages {
	if m, ok := catalogs[strings.ToLower(code)]; ok {
		return m
	}
	log.WithFields(log.Fields{"locale": code, "default": Default}).Info("unrecognized locale, using default")
	return catalogs[Default]
}
