package controller

import (
	"errors"
	"net/http"

	"github.com/kokorindanilll2288-sys/rdss.github.io/database/model"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/entity"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/service"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/session"

	"github.com/gin-gonic/gin"
)

// SendForm represents the send-message request structure.
type SendForm struct {
	Text string `json:"text" form:"text"`
}

// ChatController handles the chat page and the shared message feed.
type ChatController struct {
	BaseController

	messageService service.MessageService
	settingService service.SettingService
	moderationCtl  *ModerationController
}

func NewChatController(g *gin.RouterGroup) *ChatController {
	a := &ChatController{}
	a.initRouter(g)
	return a
}

func (a *ChatController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel")
	g.Use(a.checkLogin)

	g.GET("/", a.index)
	g.GET("/api/feed", a.feed)
	g.POST("/api/messages", a.send)

	a.moderationCtl = NewModerationController(g)
}

func (a *ChatController) index(c *gin.Context) {
	user := session.GetLoginUser(c)
	html(c, "chat.html", "Tatar SMS", gin.H{
		"username": user.Username,
		"isAdmin":  user.IsAdmin,
	})
}

// feed returns the public feed with the requester's own messages marked.
// When the feed is empty the welcome text is included so the UI can show
// the synthetic welcome entry.
func (a *ChatController) feed(c *gin.Context) {
	msgs, err := a.messageService.PublicFeed()
	if err != nil {
		jsonMsg(c, "Не удалось загрузить сообщения", err)
		return
	}

	user := session.GetLoginUser(c)
	items := make([]entity.FeedItem, 0, len(msgs))
	for i := range msgs {
		items = append(items, feedItem(&msgs[i], user))
	}

	obj := gin.H{"messages": items}
	if len(items) == 0 {
		welcome, err := a.settingService.GetWelcomeText()
		if err == nil {
			obj["welcome"] = welcome
		}
	}
	jsonObj(c, obj, nil)
}

// send appends a message authored by the session identity.
func (a *ChatController) send(c *gin.Context) {
	var form SendForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Неверные данные формы")
		return
	}

	user := session.GetLoginUser(c)
	msg, err := a.messageService.Append(user.Username, form.Text)
	if errors.Is(err, service.ErrEmptyMessage) {
		pureJsonMsg(c, http.StatusOK, false, "Сообщение не может быть пустым!")
		return
	} else if err != nil {
		jsonMsg(c, "Не удалось отправить сообщение", err)
		return
	}

	jsonObj(c, feedItem(msg, user), nil)
}

func feedItem(msg *model.Message, user *model.User) entity.FeedItem {
	return entity.FeedItem{
		Id:              msg.Id,
		Author:          msg.Author,
		Text:            msg.Text,
		CreatedAt:       msg.CreatedAt,
		NeedsModeration: msg.NeedsModeration,
		Own:             user != nil && msg.Author == user.Username,
	}
}
