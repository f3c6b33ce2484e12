package mail

import "html/template"

var activationTemplate = template.Must(template.New("activation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:30px 0;background-color:#f5f5f5;font-family:Helvetica,Arial,sans-serif;color:#333333;">
  <div style="max-width:500px;margin:0 auto;background-color:#ffffff;border-radius:6px;overflow:hidden;">
    <div style="background-color:#222222;padding:20px 0;text-align:center;">
      <h1 style="color:#ffffff;margin:0;font-size:22px;">{{.AppName}}</h1>
    </div>
    <div style="padding:25px 20px;text-align:center;">
      <p style="font-size:16px;">Welcome, <strong>{{.Username}}</strong>!</p>
      <p style="font-size:15px;color:#444444;">Thanks for signing up. Click the button below to activate your account. The link is single-use.</p>
      <p style="margin:25px 0;">
        <a href="{{.Link}}" style="display:inline-block;background-color:#222222;color:#ffffff;text-decoration:none;padding:12px 25px;border-radius:4px;font-weight:bold;">Activate account</a>
      </p>
      <p style="font-size:13px;color:#666666;">If the button does not work, open this link:<br>{{.Link}}</p>
    </div>
    <div style="background-color:#f8f8f8;padding:15px;text-align:center;font-size:13px;color:#666666;border-top:1px solid #eeeeee;">
      If you did not create this account, you can ignore this email.
    </div>
  </div>
</body>
</html>`))

var resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:30px 0;background-color:#f5f5f5;font-family:Helvetica,Arial,sans-serif;color:#333333;">
  <div style="max-width:500px;margin:0 auto;background-color:#ffffff;border-radius:6px;overflow:hidden;">
    <div style="background-color:#222222;padding:20px 0;text-align:center;">
      <h1 style="color:#ffffff;margin:0;font-size:22px;">{{.AppName}}</h1>
    </div>
    <div style="padding:25px 20px;text-align:center;">
      <p style="font-size:16px;">Hi <strong>{{.Username}}</strong>,</p>
      <p style="font-size:15px;color:#444444;">We received a request to reset your password. Click the button below to choose a new one. The link is single-use.</p>
      <p style="margin:25px 0;">
        <a href="{{.Link}}" style="display:inline-block;background-color:#222222;color:#ffffff;text-decoration:none;padding:12px 25px;border-radius:4px;font-weight:bold;">Reset password</a>
      </p>
      <p style="font-size:13px;color:#666666;">If the button does not work, open this link:<br>{{.Link}}</p>
    </div>
    <div style="background-color:#f8f8f8;padding:15px;text-align:center;font-size:13px;color:#666666;border-top:1px solid #eeeeee;">
      If you did not request a reset, you can ignore this email.
    </div>
  </div>
</body>
</html>`))
