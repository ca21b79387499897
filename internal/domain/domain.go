package domain

import (
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/auth"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/notification"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/paper"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/user"
)

type User = user.User
type UserToken = auth.UserToken

type Paper = paper.Paper
type PaperHistoryEntry = paper.HistoryEntry
type PaperEvaluation = paper.Evaluation

type NotificationEvent = notification.Event
