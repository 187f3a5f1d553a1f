package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/kokorindanilll2288-sys/rdss.github.io/database"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/service"

	"github.com/gin-gonic/gin"
)

// DenylistForm carries the comma-separated moderation terms.
type DenylistForm struct {
	Terms string `json:"terms" form:"terms"`
}

// ModerationController handles the admin-only moderation queue, denylist
// management, status, logs and backup endpoints.
type ModerationController struct {
	BaseController

	messageService service.MessageService
	settingService service.SettingService
	serverService  service.ServerService
}

func NewModerationController(g *gin.RouterGroup) *ModerationController {
	a := &ModerationController{}
	a.initRouter(g)
	return a
}

func (a *ModerationController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/api")
	g.Use(a.checkAdmin)

	g.GET("/moderation", a.queue)
	g.POST("/moderation/:id/delete", a.delete)
	g.GET("/denylist", a.denylist)
	g.POST("/denylist", a.updateDenylist)
	g.GET("/status", a.status)
	g.GET("/logs/:count", a.logs)
	g.GET("/backup", a.backup)
	g.POST("/backup", a.restore)
}

// queue returns flagged, undeleted messages in send order.
func (a *ModerationController) queue(c *gin.Context) {
	msgs, err := a.messageService.ModerationQueue()
	if err != nil {
		jsonMsg(c, "Не удалось загрузить очередь модерации", err)
		return
	}
	jsonObj(c, msgs, nil)
}

// delete soft-deletes a message. Deleting an unknown or already-deleted
// message is a silent no-op.
func (a *ModerationController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Неверный идентификатор сообщения")
		return
	}

	mutated, err := a.messageService.SoftDelete(id)
	if err != nil {
		jsonMsg(c, "Не удалось удалить сообщение", err)
		return
	}
	if mutated {
		jsonMsgObj(c, "Сообщение удалено!", mutated, nil)
	} else {
		jsonObj(c, mutated, nil)
	}
}

func (a *ModerationController) denylist(c *gin.Context) {
	terms, err := a.settingService.GetDenylist()
	if err != nil {
		jsonMsg(c, "Не удалось загрузить список запрещенных слов", err)
		return
	}
	jsonObj(c, terms, nil)
}

func (a *ModerationController) updateDenylist(c *gin.Context) {
	var form DenylistForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "Неверные данные формы")
		return
	}
	err := a.settingService.SetDenylist(strings.Split(form.Terms, ","))
	jsonMsg(c, "Список запрещенных слов обновлен", err)
}

func (a *ModerationController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *ModerationController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil {
		count = 50
	}
	level := c.DefaultQuery("level", "info")
	jsonObj(c, a.serverService.GetLogs(count, level), nil)
}

// backup streams the full message log, deleted entries included, as a
// JSON attachment.
func (a *ModerationController) backup(c *gin.Context) {
	data, err := a.messageService.ExportMessages()
	if err != nil {
		jsonMsg(c, "Не удалось выгрузить сообщения", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", "tatar-sms-messages.json"))
	c.Data(http.StatusOK, "application/json", data)
}

// restore replaces the message log with an uploaded backup.
func (a *ModerationController) restore(c *gin.Context) {
	file, _, err := c.Request.FormFile("backup")
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Файл резервной копии не найден")
		return
	}
	defer file.Close()

	// A raw database file is not a message backup
	if ok, err := database.IsSQLiteDB(file); err == nil && ok {
		pureJsonMsg(c, http.StatusBadRequest, false, "Ожидается JSON-файл резервной копии")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		jsonMsg(c, "Не удалось прочитать файл", err)
		return
	}
	err = a.messageService.ImportMessages(data)
	jsonMsg(c, "Сообщения восстановлены", err)
}
