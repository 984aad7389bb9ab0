package app

import (
	"sort"
	"time"

	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/querycache"
)

// Cache key roots. Invalidating a root covers every key beneath it.
var (
	KeyBoards         = querycache.NewKey("boards")
	KeyCards          = querycache.NewKey("cards")
	KeyComments       = querycache.NewKey("comments")
	KeyChecklists     = querycache.NewKey("checklists")
	KeyUsers          = querycache.NewKey("users")
	KeyPendingUsers   = querycache.NewKey("pending-users")
	KeyCurrentUser    = querycache.NewKey("user")
	KeyContacts       = querycache.NewKey("contacts")
	KeyCalendarEvents = querycache.NewKey("calendar-events")
	KeyNotifications  = querycache.NewKey("notifications")
	KeyConversations  = querycache.NewKey("conversations")
	KeyConversation   = querycache.NewKey("conversation")
	KeyFiles          = querycache.NewKey("files")
	KeySearch         = querycache.NewKey("search")
	KeyReports        = querycache.NewKey("reports")
)

// Reports and search results are computed from these roots, so a write
// under any of them also invalidates KeyReports and KeySearch.
var derivedFrom = []querycache.Key{
	KeyBoards, KeyCards, KeyComments, KeyChecklists, KeyContacts,
	KeyUsers, KeyPendingUsers, KeyFiles, KeyCalendarEvents,
}

func withDerived(keys []querycache.Key) []querycache.Key {
	for _, k := range keys {
		for _, root := range derivedFrom {
			if k.HasPrefix(root) {
				return append(append([]querycache.Key(nil), keys...), KeyReports, KeySearch)
			}
		}
	}
	return keys
}

func boardsListKey(includeArchived bool) querycache.Key {
	return KeyBoards.With("list", includeArchived)
}

func boardDetailKey(boardID int) querycache.Key { return KeyBoards.With("detail", boardID) }

func myCardsKey() querycache.Key { return KeyCards.With("mine") }

func commentsKey(cardID int) querycache.Key { return KeyComments.With(cardID) }

func checklistsKey(cardID int) querycache.Key { return KeyChecklists.With(cardID) }

func contactsKey(search string) querycache.Key { return KeyContacts.With(search) }

func eventsKey(start, end time.Time) querycache.Key {
	return KeyCalendarEvents.With(start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
}

func notificationsKey(unreadOnly bool) querycache.Key {
	return KeyNotifications.With("list", unreadOnly)
}

func unreadCountKey() querycache.Key { return KeyNotifications.With("unread-count") }

func conversationKey(id int) querycache.Key { return KeyConversation.With(id) }

func searchKey(q string) querycache.Key { return KeySearch.With(q) }

// reportKey sorts params so equal parameter sets share an entry.
func reportKey(kind client.ReportKind, params map[string]string) querycache.Key {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)
	k := KeyReports.With(string(kind))
	for _, n := range names {
		k = k.With(n + "=" + params[n])
	}
	return k
}
